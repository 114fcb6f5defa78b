// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package snapshot holds the in-memory view of fetched eBird data.
//
// A Snapshot is built once per refresh and published through a Store with an
// atomic pointer swap. Readers always see a complete, consistent snapshot;
// a refresh in flight never tears the data under a concurrent request.
// Published snapshots are treated as read-only.
package snapshot

import (
	"time"

	"github.com/tomtom215/avocet/internal/geo"
	"github.com/tomtom215/avocet/internal/models"
)

// Snapshot is one complete fetch of hotspots and their observation summaries.
type Snapshot struct {
	// Locations are the hotspots inside the configured search radius.
	Locations []models.Location

	// Summaries maps location ID to its aggregated observations.
	// Locations without recent observations have no entry here.
	Summaries map[string]models.LocationObservationSummary

	// Index answers radius queries over Locations.
	Index *geo.SpatialIndex

	// Center and RadiusKm record the query that produced this snapshot.
	Center   geo.Point
	RadiusKm float64

	// LookbackDays is the observation window the summaries cover.
	LookbackDays int

	// DistinctSpecies counts unique species codes across all summaries.
	DistinctSpecies int

	// FetchedAt is when the snapshot was assembled.
	FetchedAt time.Time
}

// New assembles a Snapshot, building the spatial index and species count.
func New(
	locations []models.Location,
	summaries map[string]models.LocationObservationSummary,
	center geo.Point,
	radiusKm float64,
	lookbackDays int,
) *Snapshot {
	index := geo.NewSpatialIndex(0)
	for _, loc := range locations {
		index.Insert(loc)
	}

	species := make(map[string]struct{})
	for _, summary := range summaries {
		for code := range summary.Species {
			species[code] = struct{}{}
		}
	}

	return &Snapshot{
		Locations:       locations,
		Summaries:       summaries,
		Index:           index,
		Center:          center,
		RadiusKm:        radiusKm,
		LookbackDays:    lookbackDays,
		DistinctSpecies: len(species),
		FetchedAt:       time.Now().UTC(),
	}
}

// LocationsWithin returns the snapshot's hotspots within radiusKm of the
// given point, in insertion order.
func (s *Snapshot) LocationsWithin(lat, lng, radiusKm float64) []models.Location {
	return s.Index.QueryRadius(lat, lng, radiusKm)
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}
