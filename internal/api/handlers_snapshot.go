// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/avocet/internal/ebird"
	"github.com/tomtom215/avocet/internal/logging"
	"github.com/tomtom215/avocet/internal/models"
	"github.com/tomtom215/avocet/internal/snapshot"
)

// SnapshotStatus handles snapshot status requests.
// Responds 503 until a snapshot has been loaded.
func (h *Handler) SnapshotStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	snap, ok := h.store.Current()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeSnapshotUnavailable,
			"No observation snapshot loaded; trigger POST /api/v1/snapshot/refresh or enable fetch_on_start", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   snapshotStatusData(snap),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// SnapshotRefresh handles manual snapshot refresh requests.
//
// The refresh runs synchronously and responds with the new snapshot's
// statistics. Only one refresh may run at a time; concurrent triggers get
// 409. Upstream failures leave the previous snapshot in place and
// respond 502.
func (h *Handler) SnapshotRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	if h.refresher == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeRefreshUnavailable,
			"Snapshot refresh is not available; no eBird client configured", nil)
		return
	}

	if !h.refreshing.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, ErrCodeRefreshInProgress,
			"A snapshot refresh is already in progress", nil)
		return
	}
	defer h.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	params := ebird.FetchParams{
		CenterLat:    h.config.Center.Latitude,
		CenterLng:    h.config.Center.Longitude,
		RadiusKm:     h.config.Search.RadiusKm,
		LookbackDays: h.config.Search.LookbackDays,
	}

	logging.Ctx(r.Context()).Info().
		Float64("center_lat", params.CenterLat).
		Float64("center_lng", params.CenterLng).
		Float64("radius_km", params.RadiusKm).
		Msg("Manual snapshot refresh triggered")

	snap, err := h.refresher.BuildSnapshot(ctx, params)
	if err != nil {
		respondError(w, http.StatusBadGateway, ErrCodeRefreshFailed, "Snapshot refresh failed", err)
		return
	}

	h.store.Set(snap)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   snapshotStatusData(snap),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// snapshotStatusData converts a snapshot into its API representation.
func snapshotStatusData(snap *snapshot.Snapshot) models.SnapshotStatus {
	return models.SnapshotStatus{
		Locations:           len(snap.Locations),
		SummarizedLocations: len(snap.Summaries),
		DistinctSpecies:     snap.DistinctSpecies,
		FetchedAt:           snap.FetchedAt,
		AgeSeconds:          snap.Age().Seconds(),
		CenterLatitude:      snap.Center.Latitude,
		CenterLongitude:     snap.Center.Longitude,
		RadiusKm:            snap.RadiusKm,
		LookbackDays:        snap.LookbackDays,
	}
}
