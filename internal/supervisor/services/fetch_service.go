// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/ebird"
	"github.com/tomtom215/avocet/internal/snapshot"
)

// fetchTimeout bounds the boot-time snapshot fetch. A full refresh walks
// every hotspot in the search radius, so this is deliberately generous.
const fetchTimeout = 5 * time.Minute

// SnapshotBuilder assembles an observation snapshot from the upstream API.
// Satisfied by *ebird.Fetcher.
type SnapshotBuilder interface {
	BuildSnapshot(ctx context.Context, params ebird.FetchParams) (*snapshot.Snapshot, error)
}

// SnapshotSink receives a completed snapshot. Satisfied by *snapshot.Store.
type SnapshotSink interface {
	Set(snap *snapshot.Snapshot)
}

// InitialFetchService performs one snapshot fetch when the application
// boots, publishes the result, and then parks until shutdown.
//
// A failed fetch is logged but does not crash the service: the HTTP API is
// already serving (503 for recommendation queries) and an operator can
// trigger POST /api/v1/snapshot/refresh once the upstream recovers.
// Returning the error instead would make suture restart the fetch in a
// loop, hammering eBird on a misconfigured API key.
type InitialFetchService struct {
	builder SnapshotBuilder
	sink    SnapshotSink
	params  ebird.FetchParams
	logger  zerolog.Logger
	name    string
}

// NewInitialFetchService creates the boot-time fetch service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewInitialFetchService(builder SnapshotBuilder, sink SnapshotSink, params ebird.FetchParams, logger zerolog.Logger) *InitialFetchService {
	return &InitialFetchService{
		builder: builder,
		sink:    sink,
		params:  params,
		logger:  logger.With().Str("service", "initial-fetch").Logger(),
		name:    "initial-fetch",
	}
}

// Serve implements suture.Service.
func (s *InitialFetchService) Serve(ctx context.Context) error {
	s.logger.Info().
		Float64("center_lat", s.params.CenterLat).
		Float64("center_lng", s.params.CenterLng).
		Float64("radius_km", s.params.RadiusKm).
		Int("lookback_days", s.params.LookbackDays).
		Msg("initial snapshot fetch starting")

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.builder.BuildSnapshot(fetchCtx, s.params)
	if err != nil {
		if ctx.Err() != nil {
			// Shutdown arrived mid-fetch
			s.logger.Info().Msg("initial snapshot fetch canceled by shutdown")
			return ctx.Err()
		}
		s.logger.Warn().Err(err).
			Msg("initial snapshot fetch failed; serving without data until POST /api/v1/snapshot/refresh succeeds")
	} else {
		s.sink.Set(snap)
		s.logger.Info().
			Dur("duration", time.Since(start)).
			Int("locations", len(snap.Locations)).
			Int("distinct_species", snap.DistinctSpecies).
			Msg("initial snapshot published")
	}

	// One-shot service: stay parked so suture doesn't restart the fetch
	<-ctx.Done()
	return ctx.Err()
}

// String returns the service name for logging.
func (s *InitialFetchService) String() string {
	return s.name
}
