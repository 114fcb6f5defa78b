// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package config

import "time"

// Config holds all application configuration, populated from three layered
// sources with clear precedence: environment variables > YAML config file >
// built-in defaults. Use LoadWithKoanf to construct a validated instance.
type Config struct {
	Center   CenterConfig   `koanf:"center"`
	Search   SearchConfig   `koanf:"search"`
	EBird    EBirdConfig    `koanf:"ebird"`
	LifeList LifeListConfig `koanf:"lifelist"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CenterConfig is the observer's home position. Distances and scores are
// computed relative to this point unless a request overrides it.
type CenterConfig struct {
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

// SearchConfig controls the hotspot discovery and ranking parameters.
type SearchConfig struct {
	// RadiusKm bounds the hotspot search around the center, in kilometers.
	// eBird's hotspot endpoint caps this at 500.
	RadiusKm float64 `koanf:"radius_km"`

	// LookbackDays is the observation window requested from eBird.
	// The upstream API accepts 1-30 days.
	LookbackDays int `koanf:"lookback_days"`

	// TopSpeciesCutoff limits how many species highlights each
	// recommendation carries.
	TopSpeciesCutoff int `koanf:"top_species_cutoff"`
}

// EBirdConfig holds credentials and client tuning for the eBird API 2.0.
type EBirdConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`

	// FetchOnStart triggers a snapshot build during startup. When false the
	// server starts with an empty snapshot and waits for a manual refresh.
	FetchOnStart bool `koanf:"fetch_on_start"`
}

// LifeListConfig seeds the in-memory life list at startup.
type LifeListConfig struct {
	// Initial is the set of species codes loaded on boot.
	Initial []string `koanf:"initial"`

	// Presets are named species-code lists that can replace the live list
	// wholesale through the API, e.g. a "beginner" or regional baseline.
	Presets map[string][]string `koanf:"presets"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
