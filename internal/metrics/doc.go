// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

/*
Package metrics provides Prometheus instrumentation for Avocet.

All metrics are registered on the default registry via promauto at package
initialization, so importing this package is enough to make them visible at
the /metrics endpoint.

# Metric Groups

  - api_*: HTTP endpoint latency, throughput, active requests, rate limit hits
  - recommendation_*: engine pass duration and locations scored per pass
  - ebird_*: upstream API calls by endpoint and status, retries, 429 responses
  - snapshot_*: refresh duration and outcomes, snapshot size, last refresh time
  - circuit_breaker_*: breaker state, per-request results, state transitions
  - lifelist_*: life list size and mutation counts
  - app_*: version info and uptime

# Usage

Record helpers wrap the common multi-metric updates:

	start := time.Now()
	recs := engine.Recommend(...)
	metrics.RecordRecommendationPass(time.Since(start), len(recs))

Gauges and vectors can also be set directly:

	metrics.CircuitBreakerState.WithLabelValues("ebird").Set(2)
*/
package metrics
