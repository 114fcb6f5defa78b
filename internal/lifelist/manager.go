// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package lifelist

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/config"
	"github.com/tomtom215/avocet/internal/metrics"
)

// ErrUnknownPreset is returned when a preset name has no configured species list.
var ErrUnknownPreset = errors.New("unknown life list preset")

// Manager wraps a List with configured presets, metrics, and logging.
// API handlers mutate the life list exclusively through a Manager.
type Manager struct {
	list    *List
	presets map[string][]string
	logger  zerolog.Logger
}

// NewManager builds a Manager from configuration. The initial life list and
// all preset codes are normalized on the way in.
func NewManager(cfg config.LifeListConfig, logger zerolog.Logger) *Manager {
	presets := make(map[string][]string, len(cfg.Presets))
	for name, codes := range cfg.Presets {
		normalized := make([]string, 0, len(codes))
		for _, code := range codes {
			if c := normalize(code); c != "" {
				normalized = append(normalized, c)
			}
		}
		presets[name] = normalized
	}

	m := &Manager{
		list:    New(cfg.Initial),
		presets: presets,
		logger:  logger.With().Str("component", "lifelist").Logger(),
	}
	metrics.LifeListSize.Set(float64(m.list.Len()))

	m.logger.Info().
		Int("species", m.list.Len()).
		Int("presets", len(presets)).
		Msg("Life list initialized")

	return m
}

// Add inserts a species code. Returns true if the code was newly added.
func (m *Manager) Add(code string) bool {
	added := m.list.Add(code)
	if added {
		metrics.RecordLifeListOperation("add", m.list.Len())
		m.logger.Debug().Str("species_code", normalize(code)).Msg("Species added to life list")
	}
	return added
}

// Remove deletes a species code. Returns true if the code was present.
func (m *Manager) Remove(code string) bool {
	removed := m.list.Remove(code)
	if removed {
		metrics.RecordLifeListOperation("remove", m.list.Len())
		m.logger.Debug().Str("species_code", normalize(code)).Msg("Species removed from life list")
	}
	return removed
}

// Contains reports whether a species code is in the life list.
func (m *Manager) Contains(code string) bool {
	return m.list.Contains(code)
}

// Len returns the number of species in the life list.
func (m *Manager) Len() int {
	return m.list.Len()
}

// Codes returns all species codes in sorted order.
func (m *Manager) Codes() []string {
	return m.list.Codes()
}

// Snapshot returns an independent copy of the current set.
func (m *Manager) Snapshot() map[string]struct{} {
	return m.list.Snapshot()
}

// ApplyPreset replaces the entire life list with the named preset.
// Returns the new list size, or ErrUnknownPreset.
func (m *Manager) ApplyPreset(name string) (int, error) {
	codes, ok := m.presets[name]
	if !ok {
		return 0, ErrUnknownPreset
	}

	m.list.ReplaceAll(codes)
	size := m.list.Len()
	metrics.RecordLifeListOperation("replace", size)

	m.logger.Info().
		Str("preset", name).
		Int("species", size).
		Msg("Life list replaced from preset")

	return size, nil
}

// Presets returns the configured preset names in sorted order.
func (m *Manager) Presets() []string {
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
