package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"areacheck/internal/config"
	"areacheck/internal/geocode"
	"areacheck/internal/logger"
	"areacheck/internal/regions"
	"areacheck/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"    env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Listen     string  `short:"a" long:"listen"    env:"LISTEN_ADDRESS" description:"Address to listen on, overrides config"`
	RadiusKm   float64 `short:"r" long:"radius-km" env:"RADIUS_KM"      description:"Nearby search radius in kilometers, overrides config"`
}

func main() {
	// .env is optional, the environment may be set directly
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.RadiusKm > 0 {
		cfg.RadiusKm = opts.RadiusKm
	}

	// Refuse to start without boundary data: an empty store would report
	// every postcode as outside a conservation area.
	store, err := regions.Load(cfg.Datasets)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load boundary datasets")
	}

	geocoder := geocode.New(cfg.Geocoder.BaseURL, time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second)
	srvCtx := server.NewServerContext(cfg, store, geocoder)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check", srvCtx.HandleCheck)
	mux.HandleFunc("/api/config", srvCtx.HandleConfig)
	mux.HandleFunc("/favicon.ico", srvCtx.HandleFavicon)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.RequestLogger(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", cfg.Listen).
			Int("regions", store.Len()).
			Float64("radius_km", cfg.RadiusKm).
			Msg("Web server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}
