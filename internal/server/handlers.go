// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"areacheck/internal/config"
	"areacheck/internal/geocode"
	"areacheck/internal/regions"
)

// regionInfo is the textual summary of one matched region.
type regionInfo struct {
	Name             string `json:"name"`
	Reference        string `json:"reference,omitempty"`
	Source           string `json:"source"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// checkResponse is the full answer to one postcode query.
type checkResponse struct {
	Postcode   string                     `json:"postcode"`
	Point      *geojson.Geometry          `json:"point"`
	Inside     bool                       `json:"inside"`
	Containing []regionInfo               `json:"containing"`
	RadiusKm   float64                    `json:"radius_km"`
	Buffer     *geojson.Geometry          `json:"buffer"`
	Nearby     *geojson.FeatureCollection `json:"nearby"`
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleFavicon serves the site icon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleConfig serves the UI settings: tile layer and search radius.
func (s *ServerContext) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(struct {
		Tiles    config.Tiles `json:"tiles"`
		RadiusKm float64      `json:"radius_km"`
	}{s.Config.Tiles, s.Config.RadiusKm})
}

// HandleCheck geocodes the requested postcode and runs the containment and
// radius queries against the region store.
func (s *ServerContext) HandleCheck(w http.ResponseWriter, r *http.Request) {
	postcode := strings.TrimSpace(r.URL.Query().Get("postcode"))
	if postcode == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'postcode' is required")
		return
	}

	point, err := s.Geocoder.Resolve(r.Context(), postcode)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			writeError(w, http.StatusNotFound, "postcode not found")
			return
		}

		log.Error().Err(err).Str("postcode", postcode).Msg("Postcode lookup failed")
		writeError(w, http.StatusBadGateway, "postcode lookup failed")
		return
	}

	containing := s.Store.Containing(point)
	nearby, buffer := s.Store.WithinRadius(point, s.Config.RadiusKm)

	resp := checkResponse{
		Postcode:   postcode,
		Point:      geojson.NewGeometry(point),
		Inside:     len(containing) > 0,
		Containing: make([]regionInfo, 0, len(containing)),
		RadiusKm:   s.Config.RadiusKm,
		Buffer:     geojson.NewGeometry(buffer),
		Nearby:     geojson.NewFeatureCollection(),
	}

	for _, reg := range containing {
		resp.Containing = append(resp.Containing, summarize(reg))
	}
	for _, reg := range nearby {
		resp.Nearby.Append(nearbyFeature(reg))
	}

	log.Debug().
		Str("postcode", postcode).
		Bool("inside", resp.Inside).
		Int("containing", len(containing)).
		Int("nearby", len(nearby)).
		Msg("Postcode checked")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func summarize(r regions.Region) regionInfo {
	return regionInfo{
		Name:             r.Name,
		Reference:        r.Reference,
		Source:           r.Source,
		DocumentationURL: r.DocumentationURL,
	}
}

func nearbyFeature(r regions.Region) *geojson.Feature {
	f := geojson.NewFeature(r.Boundary)
	f.Properties = geojson.Properties{
		"name":   r.Name,
		"source": r.Source,
	}
	if r.Reference != "" {
		f.Properties["reference"] = r.Reference
	}
	if r.DocumentationURL != "" {
		f.Properties["documentation_url"] = r.DocumentationURL
	}

	return f
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
