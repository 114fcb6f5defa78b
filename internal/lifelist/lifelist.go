// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package lifelist tracks the species an observer has already seen.
//
// Membership is keyed by eBird species code (e.g. "norcar" for Northern
// Cardinal). The recommendation engine treats any species absent from the
// life list as new, so this set directly drives scoring.
package lifelist

import (
	"sort"
	"strings"
	"sync"
)

// List is a concurrency-safe set of species codes.
type List struct {
	mu    sync.RWMutex
	codes map[string]struct{}
}

// New creates a List seeded with the given species codes.
// Codes are normalized; empty entries are dropped.
func New(initial []string) *List {
	l := &List{
		codes: make(map[string]struct{}, len(initial)),
	}
	for _, code := range initial {
		if c := normalize(code); c != "" {
			l.codes[c] = struct{}{}
		}
	}
	return l
}

// normalize canonicalizes a species code. eBird codes are lowercase
// alphanumerics; user input may arrive with stray case or whitespace.
func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Add inserts a species code. Returns true if the code was not already present.
func (l *List) Add(code string) bool {
	c := normalize(code)
	if c == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.codes[c]; exists {
		return false
	}
	l.codes[c] = struct{}{}
	return true
}

// Remove deletes a species code. Returns true if the code was present.
func (l *List) Remove(code string) bool {
	c := normalize(code)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.codes[c]; !exists {
		return false
	}
	delete(l.codes, c)
	return true
}

// Contains reports whether a species code is in the list.
func (l *List) Contains(code string) bool {
	c := normalize(code)

	l.mu.RLock()
	defer l.mu.RUnlock()

	_, exists := l.codes[c]
	return exists
}

// Len returns the number of species in the list.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.codes)
}

// Codes returns all species codes in sorted order.
func (l *List) Codes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.codes))
	for code := range l.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ReplaceAll swaps the entire list for the given codes.
func (l *List) ReplaceAll(codes []string) {
	next := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if c := normalize(code); c != "" {
			next[c] = struct{}{}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.codes = next
}

// Snapshot returns an independent copy of the set. The engine scores against
// a snapshot so a pass sees one consistent life list even while mutations
// arrive concurrently.
func (l *List) Snapshot() map[string]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]struct{}, len(l.codes))
	for code := range l.codes {
		out[code] = struct{}{}
	}
	return out
}
