// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package main is the entry point for the Avocet server application.
//
// Avocet recommends birding hotspots near a home location, ranked by how
// many species the observer has not yet seen. It fetches recent observation
// data from the eBird API 2.0, scores each hotspot against the observer's
// life list, and serves the ranked results over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and config files (Koanf v2)
//  2. eBird client: rate-limited, circuit-broken API client (when an API key is set)
//  3. Snapshot store: atomic holder for the current observation snapshot
//  4. Life list: in-memory seen-species set seeded from configuration
//  5. Recommendation engine: scoring over snapshot + life list
//  6. HTTP server: REST API with Prometheus metrics
//  7. Supervisor tree: suture v4 supervision of the fetch and API services
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (AVOCET_CENTER_LAT, EBIRD_API_KEY, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Minimal setup with an initial fetch at boot:
//
//	export AVOCET_CENTER_LAT=41.95
//	export AVOCET_CENTER_LNG=-87.65
//	export EBIRD_API_KEY=your-ebird-api-key
//	export EBIRD_FETCH_ON_START=true
//	./avocet
//
// Without an API key the server still starts: the life list and health
// endpoints work, and recommendation queries answer 503 until a snapshot
// has been loaded.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Cancels any snapshot fetch in progress
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/avocet/internal/api"
	"github.com/tomtom215/avocet/internal/config"
	"github.com/tomtom215/avocet/internal/ebird"
	"github.com/tomtom215/avocet/internal/lifelist"
	"github.com/tomtom215/avocet/internal/logging"
	"github.com/tomtom215/avocet/internal/metrics"
	"github.com/tomtom215/avocet/internal/recommend"
	"github.com/tomtom215/avocet/internal/snapshot"
	"github.com/tomtom215/avocet/internal/supervisor"
	"github.com/tomtom215/avocet/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Avocet with supervisor tree")
	metrics.SetAppInfo(version)

	logging.Info().
		Float64("center_lat", cfg.Center.Latitude).
		Float64("center_lng", cfg.Center.Longitude).
		Float64("radius_km", cfg.Search.RadiusKm).
		Int("lookback_days", cfg.Search.LookbackDays).
		Bool("fetch_on_start", cfg.EBird.FetchOnStart).
		Msg("Configuration loaded")

	// Initialize the eBird client stack when an API key is configured.
	// The circuit breaker prevents a snapshot refresh from hammering the
	// upstream while it is down.
	var fetcher *ebird.Fetcher
	var refresher api.SnapshotRefresher
	if cfg.EBird.APIKey != "" {
		client := ebird.NewClient(ebird.Config{
			BaseURL:           cfg.EBird.BaseURL,
			APIKey:            cfg.EBird.APIKey,
			RequestsPerSecond: cfg.EBird.RequestsPerSecond,
			Timeout:           cfg.EBird.Timeout,
			MaxRetries:        cfg.EBird.MaxRetries,
		}, logging.Logger())
		fetcher = ebird.NewFetcher(ebird.NewCircuitBreakerClient(client), logging.Logger())
		refresher = fetcher
		logging.Info().
			Str("base_url", cfg.EBird.BaseURL).
			Float64("requests_per_second", cfg.EBird.RequestsPerSecond).
			Msg("eBird client initialized")
	} else {
		logging.Warn().Msg("EBIRD_API_KEY not set - snapshot refresh disabled, recommendations will answer 503 until a snapshot is loaded")
	}

	// Core in-memory state
	store := snapshot.NewStore()
	lifeList := lifelist.NewManager(cfg.LifeList, logging.Logger())

	engine, err := recommend.NewEngine(&recommend.Config{
		TopSpeciesCutoff: cfg.Search.TopSpeciesCutoff,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the uptime gauge current for dashboards
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(cfg, engine, store, lifeList, refresher, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer: one snapshot fetch at boot, if configured
	if fetcher != nil && cfg.EBird.FetchOnStart {
		params := ebird.FetchParams{
			CenterLat:    cfg.Center.Latitude,
			CenterLng:    cfg.Center.Longitude,
			RadiusKm:     cfg.Search.RadiusKm,
			LookbackDays: cfg.Search.LookbackDays,
		}
		tree.AddDataService(services.NewInitialFetchService(fetcher, store, params, logging.Logger()))
		logging.Info().Msg("Initial snapshot fetch service added to supervisor tree")
	} else {
		logging.Info().Msg("Initial snapshot fetch disabled - use POST /api/v1/snapshot/refresh to load data")
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
