// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Coordinate reference systems accepted for input datasets.
const (
	CRSWGS84        = "EPSG:4326"
	CRSNationalGrid = "EPSG:27700"
)

// Config represents the root configuration file structure.
type Config struct {
	Listen   string    `yaml:"listen,omitempty"`
	RadiusKm float64   `yaml:"radius_km,omitempty"`
	Geocoder Geocoder  `yaml:"geocoder,omitempty"`
	Tiles    Tiles     `yaml:"tiles,omitempty"`
	Datasets []Dataset `yaml:"datasets"`
}

// Geocoder points at the postcode resolution service.
type Geocoder struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Tiles describes the base map tile layer used by the web UI.
type Tiles struct {
	URL         string `yaml:"url,omitempty" json:"url"`
	Attribution string `yaml:"attribution,omitempty" json:"attribution"`
	Zoom        int    `yaml:"zoom,omitempty" json:"zoom"`
}

// Dataset is a single boundary source file together with its attribute schema.
type Dataset struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
	CRS    string `yaml:"crs,omitempty"`
	Fields Fields `yaml:"fields,omitempty"`
}

// Fields maps source specific attribute names onto the common region shape.
// An empty mapping means the source has no such attribute.
type Fields struct {
	Name             string `yaml:"name,omitempty"`
	Reference        string `yaml:"reference,omitempty"`
	DocumentationURL string `yaml:"documentation_url,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = "0.0.0.0:8080"
	}
	if c.RadiusKm <= 0 {
		c.RadiusKm = 10
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = "https://api.postcodes.io"
	}
	if c.Geocoder.TimeoutSeconds <= 0 {
		c.Geocoder.TimeoutSeconds = 10
	}
	if c.Tiles.URL == "" {
		c.Tiles.URL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	}
	if c.Tiles.Attribution == "" {
		c.Tiles.Attribution = "© OpenStreetMap contributors"
	}
	if c.Tiles.Zoom <= 0 {
		c.Tiles.Zoom = 12
	}

	for i := range c.Datasets {
		ds := &c.Datasets[i]
		if ds.CRS == "" {
			ds.CRS = CRSWGS84
		}
		if ds.Fields.Name == "" {
			ds.Fields.Name = "name"
		}
	}
}

func (c *Config) validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no boundary datasets configured")
	}

	for _, ds := range c.Datasets {
		if ds.Source == "" {
			return fmt.Errorf("dataset %q: source tag is required", ds.Path)
		}
		if ds.Path == "" {
			return fmt.Errorf("dataset %q: path is required", ds.Source)
		}
		if ds.CRS != CRSWGS84 && ds.CRS != CRSNationalGrid {
			return fmt.Errorf("dataset %q: unsupported crs %q", ds.Source, ds.CRS)
		}
	}

	return nil
}
