// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package models

// SpeciesHighlight is one entry in a recommendation's top-new-species list:
// the species' display name and its rounded per-checklist occurrence rate.
//
// ProbabilityPercent can exceed 100 when a species was reported more often
// than there are checklists in the sample (see SpeciesStats.OccurrenceCount).
type SpeciesHighlight struct {
	Name               string `json:"name"`
	ProbabilityPercent int    `json:"probability_percent"`
}

// Recommendation is the scored engine output for a single location.
//
// Produced fresh on every scoring pass and never persisted or mutated after
// creation. The ranked []Recommendation slice returned by the engine is the
// only state that survives a pass.
//
// Fields:
//   - NewSpeciesCount: species at the location absent from the life list
//   - ExpectedNewSpecies: sum of per-species occurrence rates over new
//     species (an optimistic expected-value approximation, not a capped
//     probability of seeing at least one new species)
//   - DistanceKm: great-circle distance from the query center
//   - Score: ExpectedNewSpecies weighted by sub-linear distance decay; the
//     sole ranking key
//   - TopNewSpecies: up to the configured cutoff (default 5) of the most
//     frequently reported new species, descending by occurrence count
type Recommendation struct {
	Location           Location           `json:"location"`
	NewSpeciesCount    int                `json:"new_species_count"`
	ExpectedNewSpecies float64            `json:"expected_new_species"`
	DistanceKm         float64            `json:"distance_km"`
	Score              float64            `json:"score"`
	TopNewSpecies      []SpeciesHighlight `json:"top_new_species"`
}
