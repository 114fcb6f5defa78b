// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package geo

import (
	"math"
	"sync"

	"github.com/tomtom215/avocet/internal/models"
)

// SpatialIndex divides geographic space into cells for fast radius queries
// over hotspot locations. Instead of O(n) distance checks against every
// location, a query only inspects cells near the query point, reducing to
// O(k) where k = number of locations in nearby cells.
//
// The snapshot store builds one index per fetched snapshot; after that the
// index is read-only, but all operations are safe for concurrent use.
//
// Time Complexity:
//   - Insert: O(1)
//   - QueryRadius: O(k) where k = locations in nearby cells
type SpatialIndex struct {
	mu       sync.RWMutex
	cells    map[cellKey][]models.Location
	cellSize float64 // Cell size in degrees
	count    int
}

// cellKey represents a grid cell coordinate.
type cellKey struct {
	X, Y int
}

// NewSpatialIndex creates a spatial index with the given approximate cell
// size in kilometers. Smaller cells are more precise but create more cells
// to check per query. A cell size near the expected query radius works well.
func NewSpatialIndex(cellSizeKm float64) *SpatialIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 25 // Default matches the default search radius
	}

	// Convert km to degrees (approximate: 1 degree ≈ 111km at equator)
	return &SpatialIndex{
		cells:    make(map[cellKey][]models.Location),
		cellSize: cellSizeKm / 111.0,
	}
}

// keyFor returns the cell key for a lat/lon coordinate.
func (idx *SpatialIndex) keyFor(lat, lon float64) cellKey {
	// Normalize longitude to [-180, 180]
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	return cellKey{
		X: int(math.Floor(lon / idx.cellSize)),
		Y: int(math.Floor(lat / idx.cellSize)),
	}
}

// Insert adds a location to the index.
func (idx *SpatialIndex) Insert(loc models.Location) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := idx.keyFor(loc.Latitude, loc.Longitude)
	idx.cells[key] = append(idx.cells[key], loc)
	idx.count++
}

// QueryRadius returns all locations within radiusKm of the given point.
// The grid narrows the candidate set; each candidate is confirmed with the
// haversine distance, so results never include locations outside the radius.
// Within a cell, locations keep their insertion order.
func (idx *SpatialIndex) QueryRadius(lat, lon, radiusKm float64) []models.Location {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	cellsToCheck := int(math.Ceil(radiusKm/111.0/idx.cellSize)) + 1
	center := idx.keyFor(lat, lon)

	var results []models.Location
	for dx := -cellsToCheck; dx <= cellsToCheck; dx++ {
		for dy := -cellsToCheck; dy <= cellsToCheck; dy++ {
			cell, exists := idx.cells[cellKey{X: center.X + dx, Y: center.Y + dy}]
			if !exists {
				continue
			}

			for _, loc := range cell {
				if DistanceKm(lat, lon, loc.Latitude, loc.Longitude) <= radiusKm {
					results = append(results, loc)
				}
			}
		}
	}

	return results
}

// Size returns the total number of indexed locations.
func (idx *SpatialIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}

// NumCells returns the number of non-empty cells.
func (idx *SpatialIndex) NumCells() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.cells)
}
