// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package ebird

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/geo"
	"github.com/tomtom215/avocet/internal/metrics"
	"github.com/tomtom215/avocet/internal/models"
	"github.com/tomtom215/avocet/internal/snapshot"
)

// FetchParams describes one snapshot refresh: where to search and how far
// back to look.
type FetchParams struct {
	CenterLat    float64
	CenterLng    float64
	RadiusKm     float64
	LookbackDays int
}

// Fetcher assembles observation snapshots from the eBird API. It fetches
// the hotspots around the search center, then the recent observations for
// each, and folds them into an immutable snapshot.
type Fetcher struct {
	client ClientInterface
	logger zerolog.Logger
}

// NewFetcher creates a snapshot fetcher backed by the given eBird client.
func NewFetcher(client ClientInterface, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "ebird_fetcher").Logger(),
	}
}

// BuildSnapshot fetches hotspots and observations and assembles a snapshot.
//
// A failed hotspot listing aborts the refresh. A failed observation fetch
// for an individual hotspot only excludes that hotspot from the snapshot,
// unless every hotspot fails, which indicates the upstream is down rather
// than a transient per-location problem.
func (f *Fetcher) BuildSnapshot(ctx context.Context, params FetchParams) (*snapshot.Snapshot, error) {
	start := time.Now()

	hotspots, err := f.client.NearbyHotspots(ctx, params.CenterLat, params.CenterLng, params.RadiusKm)
	if err != nil {
		wrapped := fmt.Errorf("hotspot fetch: %w", err)
		metrics.RecordSnapshotRefresh(time.Since(start), 0, 0, wrapped)
		return nil, wrapped
	}

	summaries := make(map[string]models.LocationObservationSummary, len(hotspots))
	failed := 0

	for _, loc := range hotspots {
		if err := ctx.Err(); err != nil {
			wrapped := fmt.Errorf("snapshot refresh canceled: %w", err)
			metrics.RecordSnapshotRefresh(time.Since(start), 0, 0, wrapped)
			return nil, wrapped
		}

		records, err := f.client.RecentObservations(ctx, loc.ID, params.LookbackDays)
		if err != nil {
			failed++
			f.logger.Warn().
				Err(err).
				Str("location_id", loc.ID).
				Str("location_name", loc.Name).
				Msg("Observation fetch failed, excluding hotspot from snapshot")
			continue
		}
		if len(records) == 0 {
			continue
		}

		summaries[loc.ID] = models.BuildLocationSummary(loc.ID, records)
	}

	if failed > 0 && failed == len(hotspots) {
		wrapped := fmt.Errorf("observation fetch failed for all %d hotspots", failed)
		metrics.RecordSnapshotRefresh(time.Since(start), 0, 0, wrapped)
		return nil, wrapped
	}

	center := geo.Point{Latitude: params.CenterLat, Longitude: params.CenterLng}
	snap := snapshot.New(hotspots, summaries, center, params.RadiusKm, params.LookbackDays)

	metrics.RecordSnapshotRefresh(time.Since(start), len(snap.Locations), snap.DistinctSpecies, nil)

	f.logger.Info().
		Int("hotspots", len(hotspots)).
		Int("summarized", len(summaries)).
		Int("failed", failed).
		Int("distinct_species", snap.DistinctSpecies).
		Dur("duration", time.Since(start)).
		Msg("Snapshot refreshed from eBird")

	return snap, nil
}
