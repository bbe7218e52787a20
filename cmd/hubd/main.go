package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/api"
	"github.com/rllynch/pi-garage-smartthings/pkg/db"
	"github.com/rllynch/pi-garage-smartthings/pkg/hub"
	"github.com/rllynch/pi-garage-smartthings/pkg/mqtt"

	_ "github.com/rllynch/pi-garage-smartthings/docs"
)

// @title           Pi Garage Hub API
// @version         1.0
// @description     REST API for the garage contact sensor hub

// @host      localhost:39500
// @BasePath  /api/v1
// @schemes   http

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/pi-garage/hub.db)")
	callbackHost := flag.String("callback-host", "", "Host sensors reach the hub on (overrides stored config)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *callbackHost != "" && cfg.APIServer != nil {
		cfg.APIServer.CallbackHost = *callbackHost
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("hub_uuid", cfg.HubUUID()).
		Str("api_address", cfg.APIAddress()).
		Str("callback", cfg.CallbackAddress()).
		Msg("Configuration loaded")

	// Create the hub service
	service, err := hub.New(ctx, hub.Options{
		Store:     database.Sensors(),
		ProfileID: cfg.Profile.ID,
		Callback:  cfg.CallbackAddress(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create hub service")
	}
	service.Start()

	// Wire up MQTT publishing
	publisher := mqtt.NewPublisher(cfg.MQTTBroker)
	publisher.Start()
	go publisher.Run(service.SubscribeEvents())

	// Create the API router
	router := api.NewRouter(service, service)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		service.Close()
		publisher.Stop()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.APIAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
