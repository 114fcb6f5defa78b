// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid.
// The first failure wins; error messages name the environment variable
// that controls the offending setting.
func (c *Config) Validate() error {
	if err := c.validateCenter(); err != nil {
		return err
	}

	if err := c.validateSearch(); err != nil {
		return err
	}

	if err := c.validateEBird(); err != nil {
		return err
	}

	if err := c.validateLifeList(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCenter validates the home position coordinates
func (c *Config) validateCenter() error {
	if err := c.validateCenterLatitude(); err != nil {
		return err
	}
	return c.validateCenterLongitude()
}

// validateCenterLatitude validates the center latitude
func (c *Config) validateCenterLatitude() error {
	if c.Center.Latitude < -90 || c.Center.Latitude > 90 {
		return fmt.Errorf("CENTER_LATITUDE must be between -90 and 90, got: %v", c.Center.Latitude)
	}
	return nil
}

// validateCenterLongitude validates the center longitude
func (c *Config) validateCenterLongitude() error {
	if c.Center.Longitude < -180 || c.Center.Longitude > 180 {
		return fmt.Errorf("CENTER_LONGITUDE must be between -180 and 180, got: %v", c.Center.Longitude)
	}
	return nil
}

const (
	maxSearchRadiusKm = 500 // eBird hotspot endpoint upper bound
	minLookbackDays   = 1
	maxLookbackDays   = 30 // eBird recent observations upper bound
)

// validateSearch validates the hotspot search parameters
func (c *Config) validateSearch() error {
	if err := c.validateSearchRadius(); err != nil {
		return err
	}
	if err := c.validateLookbackDays(); err != nil {
		return err
	}
	return c.validateTopSpeciesCutoff()
}

// validateSearchRadius validates the search radius
func (c *Config) validateSearchRadius() error {
	if c.Search.RadiusKm <= 0 || c.Search.RadiusKm > maxSearchRadiusKm {
		return fmt.Errorf("SEARCH_RADIUS_KM must be greater than 0 and at most %d", maxSearchRadiusKm)
	}
	return nil
}

// validateLookbackDays validates the observation lookback window
func (c *Config) validateLookbackDays() error {
	if c.Search.LookbackDays < minLookbackDays || c.Search.LookbackDays > maxLookbackDays {
		return fmt.Errorf("LOOKBACK_DAYS must be between %d and %d", minLookbackDays, maxLookbackDays)
	}
	return nil
}

// validateTopSpeciesCutoff validates the species highlight cutoff
func (c *Config) validateTopSpeciesCutoff() error {
	if c.Search.TopSpeciesCutoff < 1 {
		return fmt.Errorf("TOP_SPECIES_CUTOFF must be at least 1")
	}
	return nil
}

const (
	maxEBirdRequestsPerSecond = 100.0
	minEBirdTimeout           = time.Second
	maxEBirdTimeout           = 5 * time.Minute
	maxEBirdRetries           = 10
)

// validateEBird validates the eBird client configuration
func (c *Config) validateEBird() error {
	if err := c.validateEBirdBaseURL(); err != nil {
		return err
	}
	if err := c.validateEBirdAPIKey(); err != nil {
		return err
	}
	if err := c.validateEBirdRate(); err != nil {
		return err
	}
	if err := c.validateEBirdTimeout(); err != nil {
		return err
	}
	return c.validateEBirdRetries()
}

// validateEBirdBaseURL validates the eBird base URL
func (c *Config) validateEBirdBaseURL() error {
	if c.EBird.BaseURL == "" {
		return fmt.Errorf("EBIRD_BASE_URL is required")
	}
	if err := validateHTTPURL(c.EBird.BaseURL, "EBIRD_BASE_URL"); err != nil {
		return fmt.Errorf("EBIRD_BASE_URL is invalid: %w", err)
	}
	return nil
}

// validateEBirdAPIKey validates the eBird API key.
// The key is only required when the server fetches on startup; a running
// instance without a key can still serve recommendations from an existing
// snapshot but any refresh will fail upstream.
func (c *Config) validateEBirdAPIKey() error {
	if c.EBird.FetchOnStart && c.EBird.APIKey == "" {
		return fmt.Errorf("EBIRD_API_KEY is required when FETCH_ON_START=true")
	}
	return nil
}

// validateEBirdRate validates the request pacing
func (c *Config) validateEBirdRate() error {
	if c.EBird.RequestsPerSecond <= 0 || c.EBird.RequestsPerSecond > maxEBirdRequestsPerSecond {
		return fmt.Errorf("EBIRD_REQUESTS_PER_SECOND must be greater than 0 and at most %v", maxEBirdRequestsPerSecond)
	}
	return nil
}

// validateEBirdTimeout validates the per-request timeout
func (c *Config) validateEBirdTimeout() error {
	if c.EBird.Timeout < minEBirdTimeout || c.EBird.Timeout > maxEBirdTimeout {
		return fmt.Errorf("EBIRD_TIMEOUT must be between %v and %v", minEBirdTimeout, maxEBirdTimeout)
	}
	return nil
}

// validateEBirdRetries validates the retry budget
func (c *Config) validateEBirdRetries() error {
	if c.EBird.MaxRetries < 0 || c.EBird.MaxRetries > maxEBirdRetries {
		return fmt.Errorf("EBIRD_MAX_RETRIES must be between 0 and %d", maxEBirdRetries)
	}
	return nil
}

// validateLifeList validates the life list seed configuration
func (c *Config) validateLifeList() error {
	for name, codes := range c.LifeList.Presets {
		if name == "" {
			return fmt.Errorf("LIFELIST presets must have a non-empty name")
		}
		if len(codes) == 0 {
			return fmt.Errorf("LIFELIST preset %q must list at least one species code", name)
		}
		for _, code := range codes {
			if code == "" {
				return fmt.Errorf("LIFELIST preset %q contains an empty species code", name)
			}
		}
	}
	for _, code := range c.LifeList.Initial {
		if code == "" {
			return fmt.Errorf("LIFELIST_INITIAL contains an empty species code")
		}
	}
	return nil
}

// validateServer validates the HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitRequests validates the rate limit requests value
func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
