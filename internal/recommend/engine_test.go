// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package recommend

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/models"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func summaryOf(locationID string, totalChecklists int, counts map[string]int) models.LocationObservationSummary {
	species := make(models.SpeciesFrequency, len(counts))
	for code, count := range counts {
		species[code] = models.SpeciesStats{
			CommonName:      code,
			OccurrenceCount: count,
		}
	}
	return models.LocationObservationSummary{
		LocationID:      locationID,
		Species:         species,
		TotalChecklists: totalChecklists,
	}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()

		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine(nil) error = %v", err)
		}
		if e.config.TopSpeciesCutoff != DefaultTopSpeciesCutoff {
			t.Errorf("TopSpeciesCutoff = %d, want %d", e.config.TopSpeciesCutoff, DefaultTopSpeciesCutoff)
		}
	})

	t.Run("invalid cutoff rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewEngine(&Config{TopSpeciesCutoff: 0}, zerolog.Nop())
		if err == nil {
			t.Fatal("NewEngine() with zero cutoff should fail")
		}
	})
}

func TestRecommend_EmptyInputs(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	recs := e.Recommend(nil, nil, nil, 41.94, -87.67)
	if len(recs) != 0 {
		t.Errorf("Recommend() with no locations = %d results, want 0", len(recs))
	}
}

func TestRecommend_SkipsUnsummarizedLocations(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{
		{ID: "L1", Name: "Summarized", Latitude: 41.94, Longitude: -87.67},
		{ID: "L2", Name: "No Data Yet", Latitude: 41.95, Longitude: -87.66},
	}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{"norcar": 5}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 1 {
		t.Fatalf("Recommend() = %d results, want 1 (unsummarized excluded)", len(recs))
	}
	if recs[0].Location.ID != "L1" {
		t.Errorf("Recommend()[0].Location.ID = %q, want L1", recs[0].Location.ID)
	}
}

func TestRecommend_LifeListPartition(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{
		{ID: "L1", Latitude: 41.94, Longitude: -87.67},
	}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{"norcad": 5, "blujay": 3}),
	}
	lifeList := map[string]struct{}{"norcad": {}}

	recs := e.Recommend(locations, summaries, lifeList, 41.94, -87.67)
	if len(recs) != 1 {
		t.Fatalf("Recommend() = %d results, want 1", len(recs))
	}

	rec := recs[0]
	if rec.NewSpeciesCount != 1 {
		t.Errorf("NewSpeciesCount = %d, want 1 (norcad already seen)", rec.NewSpeciesCount)
	}
	if math.Abs(rec.ExpectedNewSpecies-0.3) > 1e-9 {
		t.Errorf("ExpectedNewSpecies = %v, want 0.3", rec.ExpectedNewSpecies)
	}
	if len(rec.TopNewSpecies) != 1 {
		t.Fatalf("TopNewSpecies = %v, want exactly blujay", rec.TopNewSpecies)
	}
	if rec.TopNewSpecies[0].ProbabilityPercent != 30 {
		t.Errorf("ProbabilityPercent = %d, want 30", rec.TopNewSpecies[0].ProbabilityPercent)
	}
}

func TestRecommend_ExpectedYieldIsSumOfRates(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	// Five species each reported on 5 of 10 checklists. A probabilistic
	// union would give 1-(0.5^5) = 0.969; the sum of rates gives 2.5.
	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{
			"sp1": 5, "sp2": 5, "sp3": 5, "sp4": 5, "sp5": 5,
		}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 1 {
		t.Fatalf("Recommend() = %d results, want 1", len(recs))
	}
	if math.Abs(recs[0].ExpectedNewSpecies-2.5) > 1e-9 {
		t.Errorf("ExpectedNewSpecies = %v, want 2.5 (sum of rates, not union)", recs[0].ExpectedNewSpecies)
	}
}

func TestRecommend_RanksByScoreDescending(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	// Both at the center so score equals raw expected yield.
	locations := []models.Location{
		{ID: "low", Latitude: 41.94, Longitude: -87.67},
		{ID: "high", Latitude: 41.94, Longitude: -87.67},
	}
	summaries := map[string]models.LocationObservationSummary{
		"low":  summaryOf("low", 10, map[string]int{"sp1": 5, "sp2": 5}),                       // 1.0
		"high": summaryOf("high", 10, map[string]int{"sp1": 5, "sp2": 5, "sp3": 5, "sp4": 10}), // 2.5
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 2 {
		t.Fatalf("Recommend() = %d results, want 2", len(recs))
	}
	if recs[0].Location.ID != "high" || recs[1].Location.ID != "low" {
		t.Errorf("order = [%s %s], want [high low]", recs[0].Location.ID, recs[1].Location.ID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("Score order violated: %v <= %v", recs[0].Score, recs[1].Score)
	}
}

func TestRecommend_StableOrderForEqualScores(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{
		{ID: "first", Latitude: 41.94, Longitude: -87.67},
		{ID: "second", Latitude: 41.94, Longitude: -87.67},
		{ID: "third", Latitude: 41.94, Longitude: -87.67},
	}
	same := map[string]int{"norcar": 5}
	summaries := map[string]models.LocationObservationSummary{
		"first":  summaryOf("first", 10, same),
		"second": summaryOf("second", 10, same),
		"third":  summaryOf("third", 10, same),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 3 {
		t.Fatalf("Recommend() = %d results, want 3", len(recs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if recs[i].Location.ID != want {
			t.Errorf("recs[%d] = %q, want %q (input order on ties)", i, recs[i].Location.ID, want)
		}
	}
}

func TestRecommend_ZeroChecklists(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 0, map[string]int{"norcar": 4}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 1 {
		t.Fatalf("Recommend() = %d results, want 1", len(recs))
	}

	rec := recs[0]
	if rec.ExpectedNewSpecies != 0 {
		t.Errorf("ExpectedNewSpecies = %v, want 0 with no checklists", rec.ExpectedNewSpecies)
	}
	if math.IsNaN(rec.Score) || math.IsInf(rec.Score, 0) {
		t.Errorf("Score = %v, want finite", rec.Score)
	}
	if rec.Score != 0 {
		t.Errorf("Score = %v, want 0 with no checklists", rec.Score)
	}
	if rec.NewSpeciesCount != 1 {
		t.Errorf("NewSpeciesCount = %d, want 1 (species still counted)", rec.NewSpeciesCount)
	}
	if len(rec.TopNewSpecies) != 0 {
		t.Errorf("TopNewSpecies = %v, want empty with no checklists", rec.TopNewSpecies)
	}
}

func TestRecommend_TopSpeciesCutoff(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{
			"sp1": 7, "sp2": 6, "sp3": 5, "sp4": 4, "sp5": 3, "sp6": 2, "sp7": 1,
		}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if len(recs) != 1 {
		t.Fatalf("Recommend() = %d results, want 1", len(recs))
	}

	highlights := recs[0].TopNewSpecies
	if len(highlights) != 5 {
		t.Fatalf("TopNewSpecies = %d entries, want default cutoff of 5", len(highlights))
	}

	wantPercents := []int{70, 60, 50, 40, 30}
	for i, want := range wantPercents {
		if highlights[i].ProbabilityPercent != want {
			t.Errorf("TopNewSpecies[%d] = %d%%, want %d%% (descending by frequency)",
				i, highlights[i].ProbabilityPercent, want)
		}
	}

	// NewSpeciesCount still reflects every new species, not just the cutoff
	if recs[0].NewSpeciesCount != 7 {
		t.Errorf("NewSpeciesCount = %d, want 7", recs[0].NewSpeciesCount)
	}
}

func TestRecommend_CustomCutoff(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, &Config{TopSpeciesCutoff: 2})

	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{"sp1": 9, "sp2": 8, "sp3": 7}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	if got := len(recs[0].TopNewSpecies); got != 2 {
		t.Errorf("TopNewSpecies = %d entries, want 2", got)
	}
}

func TestRecommend_HighlightTies_AlphabeticalByCode(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{"wren": 5, "amecro": 5, "junco": 5}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	highlights := recs[0].TopNewSpecies
	if len(highlights) != 3 {
		t.Fatalf("TopNewSpecies = %d entries, want 3", len(highlights))
	}
	// summaryOf sets CommonName = code, so names expose the tie-break order
	for i, want := range []string{"amecro", "junco", "wren"} {
		if highlights[i].Name != want {
			t.Errorf("TopNewSpecies[%d].Name = %q, want %q", i, highlights[i].Name, want)
		}
	}
}

func TestRecommend_ProbabilityPercentRounding(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		name            string
		count           int
		totalChecklists int
		wantPercent     int
	}{
		{"exact", 5, 10, 50},
		{"rounds down", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
		{"above 100 unclamped", 15, 10, 150},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
			summaries := map[string]models.LocationObservationSummary{
				"L1": summaryOf("L1", tt.totalChecklists, map[string]int{"sp": tt.count}),
			}

			recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
			if got := recs[0].TopNewSpecies[0].ProbabilityPercent; got != tt.wantPercent {
				t.Errorf("ProbabilityPercent = %d, want %d", got, tt.wantPercent)
			}
		})
	}
}

func TestRecommend_ScoreAtCenterIsRawExpected(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{{ID: "L1", Latitude: 41.94, Longitude: -87.67}}
	summaries := map[string]models.LocationObservationSummary{
		"L1": summaryOf("L1", 10, map[string]int{"sp1": 4}),
	}

	recs := e.Recommend(locations, summaries, nil, 41.94, -87.67)
	rec := recs[0]
	if rec.DistanceKm != 0 {
		t.Errorf("DistanceKm = %v, want 0 for identical coordinates", rec.DistanceKm)
	}
	if rec.Score != rec.ExpectedNewSpecies {
		t.Errorf("Score = %v, want raw expected %v at zero distance", rec.Score, rec.ExpectedNewSpecies)
	}
}

// TestRecommend_EndToEnd walks the full pipeline: two hotspots with equal
// expected yield, ranked apart purely by the distance discount.
func TestRecommend_EndToEnd(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	locations := []models.Location{
		{ID: "B", Name: "Far Hotspot", Latitude: 42.00, Longitude: -87.60},
		{ID: "A", Name: "Near Hotspot", Latitude: 41.90, Longitude: -87.70},
	}
	summaries := map[string]models.LocationObservationSummary{
		"A": summaryOf("A", 10, map[string]int{"spx": 4}),           // 0.4
		"B": summaryOf("B", 20, map[string]int{"spx": 2, "spy": 6}), // 0.1 + 0.3 = 0.4
	}

	recs := e.Recommend(locations, summaries, map[string]struct{}{}, 41.94, -87.67)
	if len(recs) != 2 {
		t.Fatalf("Recommend() = %d results, want 2", len(recs))
	}

	// Equal expected yield at both hotspots
	for _, rec := range recs {
		if math.Abs(rec.ExpectedNewSpecies-0.4) > 1e-9 {
			t.Errorf("%s ExpectedNewSpecies = %v, want 0.4", rec.Location.ID, rec.ExpectedNewSpecies)
		}
	}

	// The nearer hotspot wins on score
	if recs[0].Location.ID != "A" {
		t.Fatalf("recs[0] = %q, want A (closer at equal yield)", recs[0].Location.ID)
	}
	if math.Abs(recs[0].DistanceKm-5.09) > 0.05 {
		t.Errorf("A DistanceKm = %v, want ~5.09", recs[0].DistanceKm)
	}
	if math.Abs(recs[1].DistanceKm-8.83) > 0.05 {
		t.Errorf("B DistanceKm = %v, want ~8.83", recs[1].DistanceKm)
	}
	if math.Abs(recs[0].Score-0.1772) > 1e-3 {
		t.Errorf("A Score = %v, want ~0.1772", recs[0].Score)
	}
	if math.Abs(recs[1].Score-0.1346) > 1e-3 {
		t.Errorf("B Score = %v, want ~0.1346", recs[1].Score)
	}
}

func TestRecommend_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	// Input deliberately ordered low-score first
	locations := []models.Location{
		{ID: "low", Latitude: 41.94, Longitude: -87.67},
		{ID: "high", Latitude: 41.94, Longitude: -87.67},
	}
	summaries := map[string]models.LocationObservationSummary{
		"low":  summaryOf("low", 10, map[string]int{"sp1": 1}),
		"high": summaryOf("high", 10, map[string]int{"sp1": 9, "sp2": 9}),
	}
	lifeList := map[string]struct{}{"unrelated": {}}

	recs := e.Recommend(locations, summaries, lifeList, 41.94, -87.67)

	if recs[0].Location.ID != "high" {
		t.Fatalf("recs[0] = %q, want high", recs[0].Location.ID)
	}
	// The ranking must not reorder the caller's slice
	if locations[0].ID != "low" || locations[1].ID != "high" {
		t.Errorf("input locations reordered: %v", locations)
	}
	if len(summaries) != 2 {
		t.Errorf("summaries len = %d, want 2", len(summaries))
	}
	if got := summaries["high"].Species["sp1"].OccurrenceCount; got != 9 {
		t.Errorf("summary mutated: sp1 count = %d, want 9", got)
	}
	if len(lifeList) != 1 {
		t.Errorf("lifeList len = %d, want 1", len(lifeList))
	}
}
