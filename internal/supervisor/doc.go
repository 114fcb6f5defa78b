// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

/*
Package supervisor provides process supervision for Avocet using suture v4.

This package implements a small supervisor tree that manages the lifecycle of
the application's long-running services. It provides Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

The tree organizes services into two layers for failure isolation:

	RootSupervisor ("avocet")
	├── DataSupervisor ("data-layer")
	│   └── InitialFetchService (if EBIRD_FETCH_ON_START)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that a crash in the snapshot fetch path never takes
the HTTP server down with it: the API keeps answering (503 for
recommendation queries, 200 for health and life-list operations) while the
data layer restarts.

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - Exponential backoff prevents restart storms
  - Configurable failure thresholds and decay rates

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - Configurable shutdown timeout per service
  - UnstoppedServiceReport for debugging hangs

Structured Logging:
  - Suture events flow through sutureslog into the application's
    slog→zerolog bridge (see internal/logging)

# Usage Example

Basic setup in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewInitialFetchService(fetcher, store, params, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior (suture v4):
  - Return nil or an ordinary error: counted as a failure, restarted
  - Return suture.ErrDoNotRestart: removed from the supervisor, no restart
  - Context canceled: return ctx.Err() promptly, treated as a clean stop

# What Is NOT Supervised

The snapshot store and life-list manager are in-memory data structures, not
long-running services; they have no goroutines to restart. The eBird client's
retries and circuit breaker live inside the client itself, supervised
indirectly through whichever service calls it.
*/
package supervisor
