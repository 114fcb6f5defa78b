// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package recommend

import "fmt"

// DefaultTopSpeciesCutoff is the number of species highlights carried on each
// recommendation when no cutoff is configured.
const DefaultTopSpeciesCutoff = 5

// Config contains all configuration for the recommendation engine.
type Config struct {
	// TopSpeciesCutoff limits how many of the most frequently reported new
	// species are attached to each recommendation.
	TopSpeciesCutoff int `json:"top_species_cutoff"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TopSpeciesCutoff: DefaultTopSpeciesCutoff,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.TopSpeciesCutoff < 1 {
		return fmt.Errorf("top species cutoff must be at least 1, got %d", c.TopSpeciesCutoff)
	}
	return nil
}
