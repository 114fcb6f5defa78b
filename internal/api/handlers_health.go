// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/avocet/internal/models"
)

// Health handles health check requests.
//
// Always returns 200. Status is "healthy" when an observation snapshot is
// loaded and "degraded" when the server is running without one (startup
// fetch disabled or failed, no manual refresh yet).
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	snap, loaded := h.store.Current()

	status := "healthy"
	var agePtr *float64
	if loaded {
		age := snap.Age().Seconds()
		agePtr = &age
	} else {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:             status,
		Version:            h.version,
		UptimeSeconds:      time.Since(h.startTime).Seconds(),
		SnapshotLoaded:     loaded,
		SnapshotAgeSeconds: agePtr,
		LifeListSize:       h.lifeList.Len(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
//
// The server is ready as soon as it can serve traffic: the snapshot is not
// required, because the manual refresh endpoint must stay reachable to
// create one. Probes that care about data availability should inspect the
// snapshot_loaded field or use /health.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	_, loaded := h.store.Current()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ready",
		Data: map[string]interface{}{
			"ready_to_serve":  true,
			"snapshot_loaded": loaded,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
