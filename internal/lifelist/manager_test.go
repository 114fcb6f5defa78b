// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package lifelist

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/avocet/internal/config"
)

func newTestManager(cfg config.LifeListConfig) *Manager {
	return NewManager(cfg, zerolog.Nop())
}

func TestNewManager_SeedsInitial(t *testing.T) {
	m := newTestManager(config.LifeListConfig{
		Initial: []string{"norcar", "BLUJAY", "norcar", ""},
	})

	if got := m.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if !m.Contains("blujay") {
		t.Error("Contains(blujay) = false, want true (normalized from BLUJAY)")
	}
}

func TestManager_AddRemove(t *testing.T) {
	m := newTestManager(config.LifeListConfig{})

	if !m.Add("norcar") {
		t.Error("Add(norcar) = false, want true")
	}
	if m.Add("norcar") {
		t.Error("Add(norcar) = true, want false for duplicate")
	}
	if !m.Remove("norcar") {
		t.Error("Remove(norcar) = false, want true")
	}
	if m.Remove("norcar") {
		t.Error("Remove(norcar) = true, want false for absent code")
	}
}

func TestManager_ApplyPreset(t *testing.T) {
	m := newTestManager(config.LifeListConfig{
		Initial: []string{"houspa"},
		Presets: map[string][]string{
			"backyard": {"norcar", "blujay", "amecro", "MOUDOV"},
			"coastal":  {"gbbgul", "hergul"},
		},
	})

	size, err := m.ApplyPreset("backyard")
	if err != nil {
		t.Fatalf("ApplyPreset(backyard) error = %v", err)
	}
	if size != 4 {
		t.Errorf("ApplyPreset(backyard) size = %d, want 4", size)
	}

	// Replacement is wholesale - the previous list is gone
	if m.Contains("houspa") {
		t.Error("Contains(houspa) = true, want false after preset replacement")
	}
	if !m.Contains("moudov") {
		t.Error("Contains(moudov) = false, want true (normalized preset code)")
	}

	// Applying a different preset replaces again
	size, err = m.ApplyPreset("coastal")
	if err != nil {
		t.Fatalf("ApplyPreset(coastal) error = %v", err)
	}
	if size != 2 {
		t.Errorf("ApplyPreset(coastal) size = %d, want 2", size)
	}
	if m.Contains("norcar") {
		t.Error("Contains(norcar) = true, want false after second replacement")
	}
}

func TestManager_ApplyPreset_Unknown(t *testing.T) {
	m := newTestManager(config.LifeListConfig{
		Initial: []string{"norcar"},
		Presets: map[string][]string{"backyard": {"blujay"}},
	})

	_, err := m.ApplyPreset("pelagic")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("ApplyPreset(pelagic) error = %v, want ErrUnknownPreset", err)
	}

	// A failed preset application leaves the list untouched
	if !m.Contains("norcar") {
		t.Error("life list should be unchanged after unknown preset")
	}
}

func TestManager_Presets_Sorted(t *testing.T) {
	m := newTestManager(config.LifeListConfig{
		Presets: map[string][]string{
			"coastal":  {"hergul"},
			"backyard": {"norcar"},
			"alpine":   {"gycros"},
		},
	})

	got := m.Presets()
	want := []string{"alpine", "backyard", "coastal"}
	if len(got) != len(want) {
		t.Fatalf("Presets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Presets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestManager_Snapshot(t *testing.T) {
	m := newTestManager(config.LifeListConfig{Initial: []string{"norcar", "blujay"}})

	snap := m.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot() len = %d, want 2", len(snap))
	}
	if _, ok := snap["norcar"]; !ok {
		t.Error("Snapshot() missing norcar")
	}

	m.Add("amecro")
	if len(snap) != 2 {
		t.Error("snapshot should be unaffected by later additions")
	}
}
