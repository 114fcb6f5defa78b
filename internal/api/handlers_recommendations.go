// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/avocet/internal/metrics"
	"github.com/tomtom215/avocet/internal/models"
)

// recommendationsQuery holds the parsed query parameters for the
// recommendations endpoint. All parameters are optional; nil means the
// snapshot's own center or radius applies.
type recommendationsQuery struct {
	Lat      *float64 `validate:"omitempty,latitude"`
	Lng      *float64 `validate:"omitempty,longitude"`
	RadiusKm *float64 `validate:"omitempty,gt=0,lte=500"`
	Limit    *int     `validate:"omitempty,gte=1,lte=500"`
}

// Recommendations handles hotspot recommendation requests.
//
// Query parameters:
//   - lat, lng: override the scoring center (must be provided together)
//   - radius_km: override the search radius (0 < r <= 500)
//   - limit: cap the number of recommendations returned
//
// Locations are ranked by expected new life-list species discounted by
// travel distance. Responds 503 until a snapshot has been loaded.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	query, apiErr := parseRecommendationsQuery(r)
	if apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Error:    apiErr,
			Metadata: models.Metadata{Timestamp: time.Now()},
		})
		return
	}

	snap, ok := h.store.Current()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeSnapshotUnavailable,
			"No observation snapshot loaded; trigger POST /api/v1/snapshot/refresh or enable fetch_on_start", nil)
		return
	}

	centerLat := snap.Center.Latitude
	centerLng := snap.Center.Longitude
	if query.Lat != nil {
		centerLat = *query.Lat
		centerLng = *query.Lng
	}

	radiusKm := snap.RadiusKm
	if query.RadiusKm != nil {
		radiusKm = *query.RadiusKm
	}

	start := time.Now()
	candidates := snap.LocationsWithin(centerLat, centerLng, radiusKm)
	recommendations := h.engine.Recommend(candidates, snap.Summaries, h.lifeList.Snapshot(), centerLat, centerLng)
	elapsed := time.Since(start)
	metrics.RecordRecommendationPass(elapsed, len(candidates))

	if query.Limit != nil && len(recommendations) > *query.Limit {
		recommendations = recommendations[:*query.Limit]
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"recommendations": recommendations,
			"count":           len(recommendations),
			"center": map[string]float64{
				"latitude":  centerLat,
				"longitude": centerLng,
			},
			"radius_km":           radiusKm,
			"lookback_days":       snap.LookbackDays,
			"snapshot_fetched_at": snap.FetchedAt,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// parseRecommendationsQuery extracts and validates the query parameters.
// Returns an API error describing the first problem found.
func parseRecommendationsQuery(r *http.Request) (*recommendationsQuery, *models.APIError) {
	query := &recommendationsQuery{}

	var err error
	if query.Lat, err = parseQueryFloat(r, "lat"); err != nil {
		return nil, &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
	}
	if query.Lng, err = parseQueryFloat(r, "lng"); err != nil {
		return nil, &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
	}
	if query.RadiusKm, err = parseQueryFloat(r, "radius_km"); err != nil {
		return nil, &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
	}
	if query.Limit, err = parseQueryInt(r, "limit"); err != nil {
		return nil, &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
	}

	// lat and lng only make sense as a pair
	if (query.Lat == nil) != (query.Lng == nil) {
		return nil, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "lat and lng must be provided together",
		}
	}

	if apiErr := validateRequest(query); apiErr != nil {
		return nil, apiErr
	}

	return query, nil
}
