// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package models

// Location represents a birdwatching hotspot: a named, geocoded site where
// observations are recorded.
//
// Locations are created by the observation data source during the fetch phase
// and are read-only afterward. The ID is the data source's stable location
// identifier (e.g. eBird "L" codes such as "L1153264") and is the join key
// between a Location and its LocationObservationSummary.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
