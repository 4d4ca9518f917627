package server

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"areacheck/assets"
	"areacheck/internal/config"
	"areacheck/internal/regions"
)

// Resolver is the part of the geocoder the handlers depend on.
type Resolver interface {
	Resolve(ctx context.Context, postcode string) (orb.Point, error)
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Store     *regions.Store
	Geocoder  Resolver
	IndexHTML []byte
	Favicon   []byte
}

// NewServerContext wires the loaded region store and the geocoder to the
// handlers.
func NewServerContext(cfg *config.Config, store *regions.Store, geocoder Resolver) *ServerContext {
	log.Info().
		Int("regions", store.Len()).
		Float64("radius_km", cfg.RadiusKm).
		Msg("Initializing server context")

	for source, count := range store.CountBySource() {
		log.Debug().Str("source", source).Int("regions", count).Msg("Dataset registered")
	}

	return &ServerContext{
		Config:    cfg,
		Store:     store,
		Geocoder:  geocoder,
		IndexHTML: assets.Index,
		Favicon:   assets.Favicon,
	}
}
