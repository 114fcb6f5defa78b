// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package models

// ObservationRecord represents one sighting event at a location: a single
// species reported on a single checklist/submission. The fetch phase yields
// one record per reported species per checklist event within the lookback
// window.
//
// Date is the observation date as reported by the data source (string form,
// e.g. "2026-08-12 07:45"); records are compared lexicographically when
// tracking the most recent sighting, which is correct for the source's
// zero-padded year-first format.
type ObservationRecord struct {
	SpeciesCode    string `json:"species_code"`
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
	Date           string `json:"date"`
}

// SpeciesStats aggregates all sightings of one species at one location.
//
// OccurrenceCount equals the number of ObservationRecords carrying this
// species code at the location. It is intentionally NOT capped against the
// summary's TotalChecklists: a species reported multiple times within one
// checklist inflates the count, which can push the derived per-checklist
// occurrence rate above 1.0. That artifact is preserved as-is rather than
// clamped so that ranking output stays consistent with the source data.
type SpeciesStats struct {
	CommonName      string `json:"common_name"`
	ScientificName  string `json:"scientific_name"`
	OccurrenceCount int    `json:"occurrence_count"`
	LastSeenDate    string `json:"last_seen_date"`
}

// SpeciesFrequency maps a species code to its aggregate sighting stats at a
// single location.
type SpeciesFrequency map[string]SpeciesStats

// LocationObservationSummary is the frozen result of the fetch phase for one
// location: the species frequency table plus the checklist sample size the
// occurrence rates are measured against.
//
// TotalChecklists is always >= 0. A summary with TotalChecklists == 0 carries
// no usable signal and scores as zero yield; it is never an error.
// Summaries are built once by BuildLocationSummary and never mutated.
type LocationObservationSummary struct {
	LocationID      string           `json:"location_id"`
	Species         SpeciesFrequency `json:"species"`
	TotalChecklists int              `json:"total_checklists"`
}

// BuildLocationSummary tallies raw observation records into a
// LocationObservationSummary for the given location.
//
// Each record counts as one checklist event, so TotalChecklists is simply
// len(records). Per species code, OccurrenceCount is the number of records
// carrying that code, CommonName/ScientificName come from the first record
// seen, and LastSeenDate is the lexicographic maximum of the record dates.
func BuildLocationSummary(locationID string, records []ObservationRecord) LocationObservationSummary {
	summary := LocationObservationSummary{
		LocationID:      locationID,
		Species:         make(SpeciesFrequency, len(records)),
		TotalChecklists: len(records),
	}

	for _, rec := range records {
		if rec.SpeciesCode == "" {
			continue
		}

		stats, seen := summary.Species[rec.SpeciesCode]
		if !seen {
			stats = SpeciesStats{
				CommonName:     rec.CommonName,
				ScientificName: rec.ScientificName,
			}
		}

		stats.OccurrenceCount++
		if rec.Date > stats.LastSeenDate {
			stats.LastSeenDate = rec.Date
		}

		summary.Species[rec.SpeciesCode] = stats
	}

	return summary
}
