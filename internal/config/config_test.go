package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
datasets:
  - source: "england"
    path: "data/england.geojson"
    fields:
      reference: "reference"
      documentation_url: "documentation-url"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Listen != "0.0.0.0:8080" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.RadiusKm != 10 {
		t.Errorf("RadiusKm = %v, want 10", cfg.RadiusKm)
	}
	if cfg.Geocoder.BaseURL != "https://api.postcodes.io" {
		t.Errorf("Geocoder.BaseURL = %q", cfg.Geocoder.BaseURL)
	}
	if cfg.Geocoder.TimeoutSeconds != 10 {
		t.Errorf("Geocoder.TimeoutSeconds = %d, want 10", cfg.Geocoder.TimeoutSeconds)
	}
	if cfg.Tiles.URL == "" || cfg.Tiles.Attribution == "" || cfg.Tiles.Zoom == 0 {
		t.Errorf("tile defaults not applied: %+v", cfg.Tiles)
	}

	ds := cfg.Datasets[0]
	if ds.CRS != CRSWGS84 {
		t.Errorf("dataset CRS = %q, want %q", ds.CRS, CRSWGS84)
	}
	if ds.Fields.Name != "name" {
		t.Errorf("dataset name field = %q, want name", ds.Fields.Name)
	}
	if ds.Fields.DocumentationURL != "documentation-url" {
		t.Errorf("dataset documentation field = %q", ds.Fields.DocumentationURL)
	}
}

func TestLoadFieldMappings(t *testing.T) {
	path := writeConfig(t, `
radius_km: 5
datasets:
  - source: "wales"
    path: "data/wales.geojson"
    crs: "EPSG:27700"
    fields:
      name: "Name"
      reference: "fid"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.RadiusKm != 5 {
		t.Errorf("RadiusKm = %v, want 5", cfg.RadiusKm)
	}

	ds := cfg.Datasets[0]
	if ds.CRS != CRSNationalGrid {
		t.Errorf("CRS = %q, want %q", ds.CRS, CRSNationalGrid)
	}
	if ds.Fields.Name != "Name" || ds.Fields.Reference != "fid" {
		t.Errorf("field mapping not preserved: %+v", ds.Fields)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no datasets", "listen: \"0.0.0.0:8080\"\n", "no boundary datasets"},
		{
			"missing source",
			"datasets:\n  - path: \"data/a.geojson\"\n",
			"source tag is required",
		},
		{
			"missing path",
			"datasets:\n  - source: \"a\"\n",
			"path is required",
		},
		{
			"bad crs",
			"datasets:\n  - source: \"a\"\n    path: \"data/a.geojson\"\n    crs: \"EPSG:3857\"\n",
			"unsupported crs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() on a missing file returned nil error")
	}
}
