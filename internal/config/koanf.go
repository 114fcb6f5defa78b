// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/avocet/config.yaml",
	"/etc/avocet/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults that form the lowest-priority
// configuration layer. Every default here must pass Validate on its own so a
// bare `EBIRD_API_KEY=... avocet` invocation works.
func defaultConfig() Config {
	return Config{
		Center: CenterConfig{
			Latitude:  0.0,
			Longitude: 0.0,
		},
		Search: SearchConfig{
			RadiusKm:         25.0,
			LookbackDays:     30,
			TopSpeciesCutoff: 5,
		},
		EBird: EBirdConfig{
			BaseURL:           "https://api.ebird.org/v2",
			APIKey:            "",
			RequestsPerSecond: 2.0,
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			FetchOnStart:      false,
		},
		LifeList: LifeListConfig{
			Initial: nil,
			Presets: nil,
		},
		Server: ServerConfig{
			Port:    8080,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the single way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// CENTER_LATITUDE -> center.latitude
	// EBIRD_API_KEY -> ebird.api_key
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
// when provided through environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"lifelist.initial",
}

// processSliceFields converts comma-separated string values to slices for the
// paths listed in sliceConfigPaths. YAML files provide real slices; environment
// variables can only carry flat strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			// Absent, or already a real slice from the YAML layer
			continue
		}

		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables return an empty string and are skipped, which keeps
// unrelated process environment out of the configuration tree.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Center position
		"center_latitude":  "center.latitude",
		"center_longitude": "center.longitude",

		// Search parameters
		"search_radius_km":   "search.radius_km",
		"lookback_days":      "search.lookback_days",
		"top_species_cutoff": "search.top_species_cutoff",

		// eBird client
		"ebird_base_url":            "ebird.base_url",
		"ebird_api_key":             "ebird.api_key",
		"ebird_requests_per_second": "ebird.requests_per_second",
		"ebird_timeout":             "ebird.timeout",
		"ebird_max_retries":         "ebird.max_retries",
		"fetch_on_start":            "ebird.fetch_on_start",

		// Life list seeding
		"lifelist_initial": "lifelist.initial",

		// HTTP server
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",

		// Security
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped variables are ignored
	return ""
}
