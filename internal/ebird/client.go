// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package ebird

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/avocet/internal/metrics"
	"github.com/tomtom215/avocet/internal/models"
)

const (
	apiKeyHeader = "X-eBirdApiToken"

	defaultRequestsPerSecond = 2.0
	defaultTimeout           = 30 * time.Second

	// eBird caps the hotspot search radius at 500 km.
	maxHotspotDistanceKm = 500

	maxErrorBodyBytes = 512
)

// ClientInterface defines the eBird API operations the rest of the
// application depends on. Both the raw client and the circuit breaker
// wrapper implement it.
type ClientInterface interface {
	// NearbyHotspots returns the public birding hotspots within radiusKm
	// of the given coordinates.
	NearbyHotspots(ctx context.Context, lat, lng, radiusKm float64) ([]models.Location, error)

	// RecentObservations returns the species observed at a hotspot within
	// the trailing backDays window.
	RecentObservations(ctx context.Context, locationID string, backDays int) ([]models.ObservationRecord, error)
}

// Compile-time interface check
var _ ClientInterface = (*Client)(nil)

// Config holds the connection settings for the eBird API 2.0.
type Config struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxRetries        int
}

// Client is a typed HTTP client for the eBird API 2.0. All requests are
// paced through a token-bucket limiter so bulk snapshot refreshes stay
// under the upstream rate limit, and 429 responses are retried with
// exponential backoff.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an eBird API client from the given configuration.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: maxRetries,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "ebird_client").Logger(),
	}
}

// APIError is returned when the eBird API responds with a non-200 status.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ebird %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("ebird %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// hotspotResponse mirrors the JSON rows from /ref/hotspot/geo.
type hotspotResponse struct {
	LocID             string  `json:"locId"`
	LocName           string  `json:"locName"`
	CountryCode       string  `json:"countryCode"`
	SubnationalCode   string  `json:"subnational1Code"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	LatestObsDate     string  `json:"latestObsDt"`
	NumSpeciesAllTime int     `json:"numSpeciesAllTime"`
}

// observationResponse mirrors the JSON rows from /data/obs/{locId}/recent.
type observationResponse struct {
	SpeciesCode string `json:"speciesCode"`
	ComName     string `json:"comName"`
	SciName     string `json:"sciName"`
	ObsDt       string `json:"obsDt"`
	HowMany     int    `json:"howMany"`
	LocID       string `json:"locId"`
	SubID       string `json:"subId"`
}

// NearbyHotspots returns the public birding hotspots within radiusKm of
// the given coordinates, mapped to the internal location model.
func (c *Client) NearbyHotspots(ctx context.Context, lat, lng, radiusKm float64) ([]models.Location, error) {
	dist := int(radiusKm)
	if dist < 1 {
		dist = 1
	}
	if dist > maxHotspotDistanceKm {
		dist = maxHotspotDistanceKm
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', 4, 64))
	params.Set("dist", strconv.Itoa(dist))
	params.Set("fmt", "json")

	requestURL := fmt.Sprintf("%s/ref/hotspot/geo?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, "hotspot_geo", requestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch hotspots: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var rows []hotspotResponse
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode hotspot response: %w", err)
	}

	locations := make([]models.Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, models.Location{
			ID:        row.LocID,
			Name:      row.LocName,
			Latitude:  row.Lat,
			Longitude: row.Lng,
		})
	}

	c.logger.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Int("dist_km", dist).
		Int("hotspots", len(locations)).
		Msg("Fetched nearby hotspots")

	return locations, nil
}

// RecentObservations returns the species observed at a hotspot within the
// trailing backDays window. The eBird API returns one row per species
// carrying its most recent sighting.
func (c *Client) RecentObservations(ctx context.Context, locationID string, backDays int) ([]models.ObservationRecord, error) {
	if backDays < 1 {
		backDays = 1
	}

	params := url.Values{}
	params.Set("back", strconv.Itoa(backDays))

	requestURL := fmt.Sprintf("%s/data/obs/%s/recent?%s",
		c.baseURL, url.PathEscape(locationID), params.Encode())

	resp, err := c.doRequest(ctx, "recent_observations", requestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch observations for %s: %w", locationID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var rows []observationResponse
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode observation response: %w", err)
	}

	records := make([]models.ObservationRecord, 0, len(rows))
	for _, row := range rows {
		if row.SpeciesCode == "" {
			continue
		}
		records = append(records, models.ObservationRecord{
			SpeciesCode:    row.SpeciesCode,
			CommonName:     row.ComName,
			ScientificName: row.SciName,
			Date:           row.ObsDt,
		})
	}

	return records, nil
}

// doRequest performs a GET against the eBird API with rate limit pacing
// and 429 retry handling. The endpoint label is used for metrics only.
func (c *Client) doRequest(ctx context.Context, endpoint, requestURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	const baseDelay = 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordEBirdRequest(endpoint, "error", time.Since(start))
			return nil, fmt.Errorf("execute request: %w", err)
		}
		metrics.RecordEBirdRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

		if resp.StatusCode == http.StatusTooManyRequests {
			metrics.EBirdRateLimited.Inc()
			_ = resp.Body.Close()

			if attempt == c.maxRetries {
				return nil, fmt.Errorf("rate limited after %d attempts", attempt+1)
			}

			retryDelay := baseDelay * (1 << attempt)
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if parsed, parseErr := time.ParseDuration(retryAfter + "s"); parseErr == nil {
					retryDelay = parsed
				}
			}

			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("attempt", attempt+1).
				Dur("retry_delay", retryDelay).
				Msg("eBird API rate limited, backing off")
			metrics.EBirdRetriesTotal.Inc()

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
			_ = resp.Body.Close()
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(body)),
			}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("rate limited after %d attempts", c.maxRetries+1)
}
