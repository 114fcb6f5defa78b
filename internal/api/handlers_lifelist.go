// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/avocet/internal/lifelist"
	"github.com/tomtom215/avocet/internal/models"
)

// lifeListAddRequest is the body for adding a species to the life list.
type lifeListAddRequest struct {
	SpeciesCode string `json:"speciesCode" validate:"required,max=64"`
}

// LifeListGet handles life list retrieval requests.
func (h *Handler) LifeListGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	codes := h.lifeList.Codes()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"species": codes,
			"count":   len(codes),
			"presets": h.lifeList.Presets(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// LifeListAdd handles requests to add a species to the life list.
// Adding a species already on the list is a no-op, reported via the
// "added" field.
func (h *Handler) LifeListAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var req lifeListAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Error:    apiErr,
			Metadata: models.Metadata{Timestamp: time.Now()},
		})
		return
	}

	added := h.lifeList.Add(req.SpeciesCode)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"species_code": req.SpeciesCode,
			"added":        added,
			"count":        h.lifeList.Len(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// LifeListRemove handles requests to remove a species from the life list.
// Responds 404 when the species is not on the list.
func (h *Handler) LifeListRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Species code is required", nil)
		return
	}

	if !h.lifeList.Remove(code) {
		respondError(w, http.StatusNotFound, ErrCodeSpeciesNotFound, "Species not on life list", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"species_code": code,
			"removed":      true,
			"count":        h.lifeList.Len(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// LifeListApplyPreset handles requests to replace the life list with a
// configured preset. Responds 404 when the preset name is unknown.
func (h *Handler) LifeListApplyPreset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Preset name is required", nil)
		return
	}

	size, err := h.lifeList.ApplyPreset(name)
	if err != nil {
		if errors.Is(err, lifelist.ErrUnknownPreset) {
			respondError(w, http.StatusNotFound, ErrCodePresetNotFound, "Unknown life list preset", err)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to apply preset", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"preset": name,
			"count":  size,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
