// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package models

import "time"

// APIResponse is the envelope returned by every JSON endpoint.
//
// Status is "success" or "error". Data carries the endpoint payload and is
// null on errors. Error is only present when Status is "error".
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Timestamp is the server time the response was generated. QueryTimeMS is
// the scoring-pass duration in milliseconds for endpoints that run one.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a structured error payload with a machine-readable code.
//
// Common codes: VALIDATION_ERROR, SNAPSHOT_UNAVAILABLE, PRESET_NOT_FOUND,
// SPECIES_NOT_FOUND, REFRESH_IN_PROGRESS, REFRESH_FAILED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports overall service health.
//
// Status is "healthy" when a snapshot is loaded and "degraded" before the
// first successful fetch. The service keeps serving either way; degraded
// only means recommendation endpoints will return SNAPSHOT_UNAVAILABLE.
type HealthStatus struct {
	Status             string   `json:"status"`
	Version            string   `json:"version"`
	UptimeSeconds      float64  `json:"uptime_seconds"`
	SnapshotLoaded     bool     `json:"snapshot_loaded"`
	SnapshotAgeSeconds *float64 `json:"snapshot_age_seconds,omitempty"`
	LifeListSize       int      `json:"life_list_size"`
}

// SnapshotStatus describes the currently loaded observation snapshot.
type SnapshotStatus struct {
	Locations           int       `json:"locations"`
	SummarizedLocations int       `json:"summarized_locations"`
	DistinctSpecies     int       `json:"distinct_species"`
	FetchedAt           time.Time `json:"fetched_at"`
	AgeSeconds          float64   `json:"age_seconds"`
	CenterLatitude      float64   `json:"center_latitude"`
	CenterLongitude     float64   `json:"center_longitude"`
	RadiusKm            float64   `json:"radius_km"`
	LookbackDays        int       `json:"lookback_days"`
}
