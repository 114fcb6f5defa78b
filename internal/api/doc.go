// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package api provides the HTTP surface: a chi router with per-group rate
// limits, the JSON response envelope, and handlers for recommendations,
// life list management, and snapshot control.
//
// Endpoints:
//
//	GET    /health
//	GET    /ready
//	GET    /metrics
//	GET    /api/v1/recommendations?lat=&lng=&radius_km=&limit=
//	GET    /api/v1/lifelist
//	POST   /api/v1/lifelist/species
//	DELETE /api/v1/lifelist/species/{code}
//	PUT    /api/v1/lifelist/preset/{name}
//	GET    /api/v1/snapshot
//	POST   /api/v1/snapshot/refresh
//
// Every endpoint responds with models.APIResponse. Errors carry a
// machine-readable code (see errors.go) alongside a human message.
package api
