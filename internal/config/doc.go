// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

/*
Package config provides centralized configuration management for Avocet.

Configuration is assembled from three layered sources with clear precedence,
highest last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML config file (CONFIG_PATH or the DefaultConfigPaths)
 3. Environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - CenterConfig: the observer's home coordinates
  - SearchConfig: hotspot radius, lookback window, species highlight cutoff
  - EBirdConfig: eBird API credentials and client pacing
  - LifeListConfig: initial life list and named presets
  - ServerConfig: HTTP server settings
  - SecurityConfig: rate limiting and CORS
  - LoggingConfig: structured logging settings

# Environment Variables

Center position (CenterConfig):
  - CENTER_LATITUDE: Home latitude in decimal degrees (default: 0)
  - CENTER_LONGITUDE: Home longitude in decimal degrees (default: 0)

Search parameters (SearchConfig):
  - SEARCH_RADIUS_KM: Hotspot search radius, max 500 (default: 25)
  - LOOKBACK_DAYS: Observation window, 1-30 days (default: 30)
  - TOP_SPECIES_CUTOFF: Species highlights per recommendation (default: 5)

eBird client (EBirdConfig):
  - EBIRD_BASE_URL: API base URL (default: https://api.ebird.org/v2)
  - EBIRD_API_KEY: API key, required when FETCH_ON_START=true
  - EBIRD_REQUESTS_PER_SECOND: Client-side pacing (default: 2)
  - EBIRD_TIMEOUT: Per-request timeout (default: 30s)
  - EBIRD_MAX_RETRIES: Retry budget for rate-limited requests (default: 3)
  - FETCH_ON_START: Build the snapshot during startup (default: false)

Life list (LifeListConfig):
  - LIFELIST_INITIAL: Comma-separated species codes loaded on boot

HTTP server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Window duration (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Life list presets are map-valued and can only be expressed in the YAML file:

	lifelist:
	  initial: [norcar, blujay]
	  presets:
	    backyard: [norcar, blujay, amecro, moudov]

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

Validation runs as part of LoadWithKoanf and fails fast with an error naming
the offending environment variable.
*/
package config
