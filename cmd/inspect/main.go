package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"areacheck/internal/config"
	"areacheck/internal/logger"
	"areacheck/internal/regions"

	"github.com/jessevdk/go-flags"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Probe      string `short:"p" long:"probe"  description:"Probe a point against the loaded datasets, formatted as lon,lat"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := regions.Load(cfg.Datasets)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load boundary datasets")
	}

	for source, count := range store.CountBySource() {
		log.Info().Str("source", source).Int("regions", count).Msg("Dataset OK")
	}
	log.Info().Int("regions_total", store.Len()).Msg("All datasets loaded")

	if opts.Probe == "" {
		return
	}

	point, err := parsePoint(opts.Probe)
	if err != nil {
		log.Fatal().Err(err).Str("probe", opts.Probe).Msg("Invalid probe point")
	}

	containing := store.Containing(point)
	nearby, _ := store.WithinRadius(point, cfg.RadiusKm)

	log.Info().
		Float64("lon", point.Lon()).
		Float64("lat", point.Lat()).
		Float64("radius_km", cfg.RadiusKm).
		Int("containing", len(containing)).
		Int("nearby", len(nearby)).
		Msg("Probe result")

	for _, r := range containing {
		log.Info().Str("name", r.Name).Str("source", r.Source).Msg("Containing region")
	}
	for _, r := range nearby {
		log.Info().Str("name", r.Name).Str("source", r.Source).Msg("Nearby region")
	}
}

func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("expected lon,lat")
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, err
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, err
	}

	return orb.Point{lon, lat}, nil
}
