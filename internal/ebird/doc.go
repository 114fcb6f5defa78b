// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package ebird integrates with the eBird API 2.0 to discover birding
// hotspots and their recently observed species.
//
// The package is organized in three layers:
//
//   - Client: a typed HTTP client for the two endpoints the application
//     uses, /ref/hotspot/geo and /data/obs/{locId}/recent. Requests are
//     paced through a token-bucket rate limiter and 429 responses are
//     retried with exponential backoff, honoring Retry-After.
//   - CircuitBreakerClient: wraps a client so a degraded upstream fails
//     fast instead of stalling refreshes behind timeouts.
//   - Fetcher: orchestrates a full snapshot refresh, one hotspot listing
//     followed by per-hotspot observation fetches.
//
// The recent-observations endpoint returns one row per species carrying
// its latest sighting, so each row is treated as one observation record
// when folding into location summaries. Occurrence counts therefore
// reflect reporting presence within the lookback window rather than raw
// checklist tallies.
//
// All requests authenticate with the X-eBirdApiToken header. An API key
// is free at https://ebird.org/api/keygen.
package ebird
