// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package api provides HTTP handlers for the Avocet application.
//
// errors.go - Machine-readable API error codes
package api

// Error codes used in APIResponse.Error.Code. Clients switch on these,
// never on the human-readable message.
const (
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeSnapshotUnavailable = "SNAPSHOT_UNAVAILABLE"
	ErrCodeSpeciesNotFound     = "SPECIES_NOT_FOUND"
	ErrCodePresetNotFound      = "PRESET_NOT_FOUND"
	ErrCodeRefreshInProgress   = "REFRESH_IN_PROGRESS"
	ErrCodeRefreshFailed       = "REFRESH_FAILED"
	ErrCodeRefreshUnavailable  = "REFRESH_UNAVAILABLE"
	ErrCodeRateLimited         = "RATE_LIMITED"
)
