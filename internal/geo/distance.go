// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package geo provides great-circle distance math and a spatial hash index
// for radius queries over hotspot locations.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used for all distance math.
const earthRadiusKm = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm calculates the great-circle distance between two lat/lon points
// in kilometers using the haversine formula.
//
// The atan2 form is used instead of acos because it stays numerically stable
// for very small deltas (no catastrophic cancellation near zero). Inputs are
// decimal degrees and are not range-checked; callers supply coordinates that
// already came from the location source. Symmetric in its arguments and
// returns 0 for identical points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceTo returns the great-circle distance in kilometers from p to other.
func (p Point) DistanceTo(other Point) float64 {
	return DistanceKm(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}
