// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the HTTP routing tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router for the given handler and middleware factory.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting (1000/min) so frequent monitoring stays cheap
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/recommendations", router.handler.Recommendations)

		// Life list management
		r.Route("/lifelist", func(r chi.Router) {
			r.Get("/", router.handler.LifeListGet)
			r.Post("/species", router.handler.LifeListAdd)
			r.Delete("/species/{code}", router.handler.LifeListRemove)
			r.Put("/preset/{name}", router.handler.LifeListApplyPreset)
		})

		// Snapshot status and refresh
		r.Route("/snapshot", func(r chi.Router) {
			r.Get("/", router.handler.SnapshotStatus)

			// Stricter rate limit: each refresh fans out into many
			// upstream eBird requests
			r.With(router.chiMiddleware.RateLimitRefresh()).Post("/refresh", router.handler.SnapshotRefresh)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
