// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/avocet/internal/config"
	"github.com/tomtom215/avocet/internal/ebird"
	"github.com/tomtom215/avocet/internal/lifelist"
	"github.com/tomtom215/avocet/internal/recommend"
	"github.com/tomtom215/avocet/internal/snapshot"
)

// SnapshotRefresher builds a fresh observation snapshot from upstream data.
// It is satisfied by *ebird.Fetcher; tests substitute a stub.
type SnapshotRefresher interface {
	BuildSnapshot(ctx context.Context, params ebird.FetchParams) (*snapshot.Snapshot, error)
}

// refreshTimeout bounds a snapshot refresh. A full refresh issues one
// upstream request per hotspot, so large radii can take minutes.
const refreshTimeout = 5 * time.Minute

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Health/monitoring endpoints
//   - handlers_recommendations.go: Recommendation endpoint
//   - handlers_lifelist.go: Life list management endpoints
//   - handlers_snapshot.go: Snapshot status and refresh endpoints
type Handler struct {
	config    *config.Config
	engine    *recommend.Engine
	store     *snapshot.Store
	lifeList  *lifelist.Manager
	refresher SnapshotRefresher
	startTime time.Time
	version   string

	// refreshing serializes snapshot refreshes: only one may run at a time.
	refreshing atomic.Bool
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - cfg: Application configuration
//   - engine: Recommendation scoring engine
//   - store: Snapshot store holding the current observation snapshot
//   - lifeList: Life list manager for seen-species tracking
//   - refresher: Snapshot refresher for manual refresh triggers (optional;
//     nil disables the refresh endpoint)
//
// Example:
//
//	handler := api.NewHandler(cfg, engine, store, lifeList, fetcher, version)
//	router := api.NewRouter(handler, middleware)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(cfg *config.Config, engine *recommend.Engine, store *snapshot.Store, lifeList *lifelist.Manager, refresher SnapshotRefresher, version string) *Handler {
	return &Handler{
		config:    cfg,
		engine:    engine,
		store:     store,
		lifeList:  lifeList,
		refresher: refresher,
		startTime: time.Now(),
		version:   version,
	}
}
