// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// withURLParam injects a chi URL parameter into the request context so
// handlers can be exercised without the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestLifeListGet tests life list retrieval.
func TestLifeListGet(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lifelist", nil)
	w := httptest.NewRecorder()

	handler.LifeListGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	data := decodeDataMap(t, w)

	species, ok := data["species"].([]interface{})
	if !ok {
		t.Fatalf("species is not an array: %T", data["species"])
	}
	if len(species) != 1 || species[0] != "norcar" {
		t.Errorf("species = %v, want [norcar]", species)
	}
	if count, _ := data["count"].(float64); count != 1 {
		t.Errorf("count = %v, want 1", data["count"])
	}

	presets, ok := data["presets"].([]interface{})
	if !ok {
		t.Fatalf("presets is not an array: %T", data["presets"])
	}
	if len(presets) != 1 || presets[0] != "lakefront-regulars" {
		t.Errorf("presets = %v, want [lakefront-regulars]", presets)
	}
}

// TestLifeListAdd tests adding species to the life list.
func TestLifeListAdd(t *testing.T) {
	t.Parallel()

	t.Run("new species", func(t *testing.T) {
		handler := newTestHandler(t)

		body := strings.NewReader(`{"speciesCode": "blujay"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lifelist/species", body)
		w := httptest.NewRecorder()

		handler.LifeListAdd(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		data := decodeDataMap(t, w)
		if data["added"] != true {
			t.Error("Expected added to be true")
		}
		if count, _ := data["count"].(float64); count != 2 {
			t.Errorf("count = %v, want 2", data["count"])
		}
		if !handler.lifeList.Contains("blujay") {
			t.Error("Expected blujay on the life list")
		}
	})

	t.Run("duplicate species", func(t *testing.T) {
		handler := newTestHandler(t)

		body := strings.NewReader(`{"speciesCode": "norcar"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lifelist/species", body)
		w := httptest.NewRecorder()

		handler.LifeListAdd(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		data := decodeDataMap(t, w)
		if data["added"] != false {
			t.Error("Expected added to be false for a duplicate")
		}
		if count, _ := data["count"].(float64); count != 1 {
			t.Errorf("count = %v, want 1", data["count"])
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler := newTestHandler(t)

		body := strings.NewReader(`{"speciesCode": `)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lifelist/species", body)
		w := httptest.NewRecorder()

		handler.LifeListAdd(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}

		apiErr := decodeErrorResponse(t, w)
		if apiErr.Code != ErrCodeInvalidJSON {
			t.Errorf("error code = %s, want %s", apiErr.Code, ErrCodeInvalidJSON)
		}
	})

	t.Run("missing species code", func(t *testing.T) {
		handler := newTestHandler(t)

		body := strings.NewReader(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lifelist/species", body)
		w := httptest.NewRecorder()

		handler.LifeListAdd(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}

		apiErr := decodeErrorResponse(t, w)
		if apiErr.Code != ErrCodeValidation {
			t.Errorf("error code = %s, want %s", apiErr.Code, ErrCodeValidation)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lifelist/species", nil)
		w := httptest.NewRecorder()

		handler.LifeListAdd(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", w.Code)
		}
	})
}

// TestLifeListRemove tests removing species from the life list.
func TestLifeListRemove(t *testing.T) {
	t.Parallel()

	t.Run("present species", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/lifelist/species/norcar", nil)
		req = withURLParam(req, "code", "norcar")
		w := httptest.NewRecorder()

		handler.LifeListRemove(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		data := decodeDataMap(t, w)
		if data["removed"] != true {
			t.Error("Expected removed to be true")
		}
		if count, _ := data["count"].(float64); count != 0 {
			t.Errorf("count = %v, want 0", data["count"])
		}
		if handler.lifeList.Contains("norcar") {
			t.Error("Expected norcar removed from the life list")
		}
	})

	t.Run("absent species", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/lifelist/species/wanalb", nil)
		req = withURLParam(req, "code", "wanalb")
		w := httptest.NewRecorder()

		handler.LifeListRemove(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", w.Code)
		}

		apiErr := decodeErrorResponse(t, w)
		if apiErr.Code != ErrCodeSpeciesNotFound {
			t.Errorf("error code = %s, want %s", apiErr.Code, ErrCodeSpeciesNotFound)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/lifelist/species/", nil)
		w := httptest.NewRecorder()

		handler.LifeListRemove(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestLifeListApplyPreset tests bulk replacement from configured presets.
func TestLifeListApplyPreset(t *testing.T) {
	t.Parallel()

	t.Run("known preset", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/lifelist/preset/lakefront-regulars", nil)
		req = withURLParam(req, "name", "lakefront-regulars")
		w := httptest.NewRecorder()

		handler.LifeListApplyPreset(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		data := decodeDataMap(t, w)
		if data["preset"] != "lakefront-regulars" {
			t.Errorf("preset = %v, want lakefront-regulars", data["preset"])
		}
		if count, _ := data["count"].(float64); count != 3 {
			t.Errorf("count = %v, want 3", data["count"])
		}
		if !handler.lifeList.Contains("amerob") {
			t.Error("Expected amerob on the life list after preset")
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/lifelist/preset/antarctic", nil)
		req = withURLParam(req, "name", "antarctic")
		w := httptest.NewRecorder()

		handler.LifeListApplyPreset(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", w.Code)
		}

		apiErr := decodeErrorResponse(t, w)
		if apiErr.Code != ErrCodePresetNotFound {
			t.Errorf("error code = %s, want %s", apiErr.Code, ErrCodePresetNotFound)
		}
		// A failed preset application leaves the list untouched
		if !handler.lifeList.Contains("norcar") {
			t.Error("Expected life list unchanged after unknown preset")
		}
	})
}
