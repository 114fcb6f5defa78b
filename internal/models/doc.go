// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

/*
Package models defines data structures for the Avocet application.

This package contains all data models used throughout the application:
hotspot locations, raw observation events, per-location species frequency
summaries, and the scored recommendations the engine produces. It serves as
the single source of truth for data structure definitions.

Key Components:

  - Location: a named, geocoded birdwatching site ("hotspot")
  - ObservationRecord: one sighting event fetched from the observation source
  - SpeciesFrequency: per-location tally of sightings keyed by species code
  - LocationObservationSummary: frozen fetch result for one location
  - Recommendation: scored, ranked engine output for one location

Data Lifecycle:

 1. The fetch phase produces Location records and, per location, a
    LocationObservationSummary built from raw ObservationRecords via
    BuildLocationSummary.
 2. A scoring pass consumes those summaries together with the user's life
    list and produces fresh Recommendation values.
 3. Nothing in this package is mutated after construction; all types are
    value-like and safe to share across goroutines once built.

Usage Example:

	records := []models.ObservationRecord{
	    {SpeciesCode: "norcar", CommonName: "Northern Cardinal", Date: "2026-08-10"},
	    {SpeciesCode: "blujay", CommonName: "Blue Jay", Date: "2026-08-12"},
	}
	summary := models.BuildLocationSummary("L123", records)
	// summary.TotalChecklists == 2, summary.Species has two entries
*/
package models
