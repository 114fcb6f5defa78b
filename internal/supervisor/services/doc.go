// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package services provides suture.Service wrappers for the application's
// long-running components.
//
// Each wrapper translates one component's lifecycle into suture's
// context-aware Serve pattern:
//
//   - HTTPServerService: wraps *http.Server, turning the blocking
//     ListenAndServe call plus Shutdown into a single supervised Serve.
//   - InitialFetchService: runs one snapshot fetch at boot and publishes
//     the result, then parks until shutdown.
//
// Wrappers depend on narrow interfaces rather than concrete types so tests
// can substitute doubles and the package stays free of import cycles.
package services
