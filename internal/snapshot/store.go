// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package snapshot

import "sync/atomic"

// Store publishes the current Snapshot to concurrent readers.
// The zero value is usable and starts empty.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the latest snapshot and whether one has been published.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Set publishes a new snapshot. Readers holding the previous snapshot keep
// a consistent view until they drop it.
func (s *Store) Set(snap *Snapshot) {
	s.current.Store(snap)
}
