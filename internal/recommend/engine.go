// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/geo"
	"github.com/tomtom215/avocet/internal/models"
)

// Note: This package depends only on the leaf packages geo and models to
// maintain clean separation. Snapshot plumbing, metrics, and transport live
// with the callers.

// Engine scores birding locations by how many unseen species they are likely
// to yield. It is stateless apart from configuration and safe for concurrent
// use: Recommend never mutates its inputs.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend ranks the given locations by expected new-species yield,
// discounted by travel distance from the center point.
//
// Locations without an observation summary are skipped: no data means no
// basis for a score, not a zero score. The returned slice is ordered by
// descending Score; ties keep the input order of locations.
func (e *Engine) Recommend(
	locations []models.Location,
	summaries map[string]models.LocationObservationSummary,
	lifeList map[string]struct{},
	centerLat, centerLng float64,
) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(locations))

	for _, loc := range locations {
		summary, ok := summaries[loc.ID]
		if !ok {
			continue
		}
		recs = append(recs, e.scoreLocation(loc, summary, lifeList, centerLat, centerLng))
	}

	// Stable: equal scores preserve the caller's location order
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	e.logger.Debug().
		Int("locations", len(locations)).
		Int("scored", len(recs)).
		Msg("Recommendation pass complete")

	return recs
}

// speciesEntry pairs a species code with its per-location stats while ranking.
type speciesEntry struct {
	code  string
	stats models.SpeciesStats
}

// scoreLocation computes the recommendation for a single summarized location.
func (e *Engine) scoreLocation(
	loc models.Location,
	summary models.LocationObservationSummary,
	lifeList map[string]struct{},
	centerLat, centerLng float64,
) models.Recommendation {
	totalChecklists := summary.TotalChecklists

	// Map iteration order is randomized; walk codes sorted so ranking ties
	// break the same way on every pass.
	codes := make([]string, 0, len(summary.Species))
	for code := range summary.Species {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	newSpecies := make([]speciesEntry, 0, len(codes))
	expected := 0.0

	for _, code := range codes {
		if _, seen := lifeList[code]; seen {
			continue
		}
		stats := summary.Species[code]
		newSpecies = append(newSpecies, speciesEntry{code: code, stats: stats})

		// Expected yield is the sum of per-species reporting rates. A
		// location with no checklists contributes nothing rather than
		// dividing by zero.
		if totalChecklists > 0 {
			expected += float64(stats.OccurrenceCount) / float64(totalChecklists)
		}
	}

	distance := geo.DistanceKm(centerLat, centerLng, loc.Latitude, loc.Longitude)

	// Distance discount: dividing by sqrt(distance) favors nearby hotspots
	// without letting distance dominate. At the center itself the raw
	// expectation stands.
	score := expected
	if distance > 0 {
		score = expected / math.Sqrt(distance)
	}

	return models.Recommendation{
		Location:           loc,
		NewSpeciesCount:    len(newSpecies),
		ExpectedNewSpecies: expected,
		DistanceKm:         distance,
		Score:              score,
		TopNewSpecies:      e.topHighlights(newSpecies, totalChecklists),
	}
}

// topHighlights ranks the new species by how often they were reported and
// keeps the configured cutoff. Reporting rates above 100% pass through
// unclamped: a species can legitimately appear on more records than there
// are checklists when multiple observers file from the same visit.
func (e *Engine) topHighlights(newSpecies []speciesEntry, totalChecklists int) []models.SpeciesHighlight {
	// No checklists means no rates to rank by; an empty highlight list beats
	// a page of zero-percent entries.
	if totalChecklists == 0 {
		return []models.SpeciesHighlight{}
	}

	ranked := make([]speciesEntry, len(newSpecies))
	copy(ranked, newSpecies)

	// Stable: equal counts keep alphabetical code order from the caller
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].stats.OccurrenceCount > ranked[j].stats.OccurrenceCount
	})

	cutoff := e.config.TopSpeciesCutoff
	if cutoff > len(ranked) {
		cutoff = len(ranked)
	}

	highlights := make([]models.SpeciesHighlight, 0, cutoff)
	for _, entry := range ranked[:cutoff] {
		name := entry.stats.CommonName
		if name == "" {
			name = entry.code
		}

		rate := float64(entry.stats.OccurrenceCount) / float64(totalChecklists)

		highlights = append(highlights, models.SpeciesHighlight{
			Name:               name,
			ProbabilityPercent: int(math.Round(rate * 100)),
		})
	}
	return highlights
}
