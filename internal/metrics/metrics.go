// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package metrics

import (
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation engine passes
// - eBird upstream client behavior (pacing, retries, circuit breaker)
// - Snapshot refresh lifecycle
// - Life list activity

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Engine Metrics
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation engine passes in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}, // Pure in-memory scoring
		},
	)

	RecommendationLocationsScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_locations_scored",
			Help:    "Number of locations scored per recommendation pass",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	RecommendationPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_passes_total",
			Help: "Total number of recommendation engine passes",
		},
	)

	// eBird Client Metrics
	EBirdRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ebird_requests_total",
			Help: "Total number of eBird API requests",
		},
		[]string{"endpoint", "status_code"},
	)

	EBirdRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ebird_request_duration_seconds",
			Help:    "Duration of eBird API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	EBirdRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ebird_retries_total",
			Help: "Total number of retried eBird requests",
		},
	)

	EBirdRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ebird_rate_limited_total",
			Help: "Total number of 429 responses from eBird",
		},
	)

	// Snapshot Refresh Metrics
	SnapshotRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_refresh_duration_seconds",
			Help:    "Duration of snapshot refresh operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600}, // Refreshes walk every hotspot
		},
	)

	SnapshotRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_refreshes_total",
			Help: "Total number of completed snapshot refreshes",
		},
	)

	SnapshotRefreshErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_refresh_errors_total",
			Help: "Total number of snapshot refresh errors",
		},
		[]string{"error_type"}, // "hotspot_fetch", "observation_fetch", "other"
	)

	SnapshotLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_refresh_timestamp",
			Help: "Unix timestamp of last successful snapshot refresh",
		},
	)

	SnapshotLocations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_locations",
			Help: "Number of hotspots in the current snapshot",
		},
	)

	SnapshotSpecies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_species",
			Help: "Number of distinct species across the current snapshot",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Life List Metrics
	LifeListSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifelist_species",
			Help: "Current number of species codes in the life list",
		},
	)

	LifeListOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifelist_operations_total",
			Help: "Total number of life list mutations",
		},
		[]string{"operation"}, // "add", "remove", "replace"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendationPass records one scoring pass over the snapshot
func RecordRecommendationPass(duration time.Duration, locationsScored int) {
	RecommendationPasses.Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationLocationsScored.Observe(float64(locationsScored))
}

// RecordEBirdRequest records an upstream eBird API call
func RecordEBirdRequest(endpoint, statusCode string, duration time.Duration) {
	EBirdRequestsTotal.WithLabelValues(endpoint, statusCode).Inc()
	EBirdRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordSnapshotRefresh records a snapshot refresh and its outcome.
// On success the location/species gauges and the last-refresh timestamp are
// updated; on failure the error is categorized by upstream phase.
func RecordSnapshotRefresh(duration time.Duration, locations, species int, err error) {
	SnapshotRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		errorType := "other"
		errorMsg := err.Error()
		switch {
		case strings.Contains(errorMsg, "hotspot"):
			errorType = "hotspot_fetch"
		case strings.Contains(errorMsg, "observation"):
			errorType = "observation_fetch"
		}
		SnapshotRefreshErrors.WithLabelValues(errorType).Inc()
		return
	}

	SnapshotRefreshes.Inc()
	SnapshotLastRefresh.Set(float64(time.Now().Unix()))
	SnapshotLocations.Set(float64(locations))
	SnapshotSpecies.Set(float64(species))
}

// RecordLifeListOperation records a life list mutation and the resulting size
func RecordLifeListOperation(operation string, size int) {
	LifeListOperations.WithLabelValues(operation).Inc()
	LifeListSize.Set(float64(size))
}

// SetAppInfo publishes the build version, called once at startup
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
