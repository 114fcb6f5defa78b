// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService implements suture.Service for supervisor tests. It can be told
// to fail its first N runs; after that it parks until the context ends, the
// same one-shot shape the real services use.
type MockService struct {
	name      string
	starts    atomic.Int32
	failsLeft atomic.Int32
}

// NewMockService creates a mock service that parks until canceled.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// SetFailCount makes the next n Serve calls return an error. Call before the
// tree starts.
func (m *MockService) SetFailCount(n int) {
	m.failsLeft.Store(int32(n))
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)

	if m.failsLeft.Add(-1) >= 0 {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

// StartCount returns how many times Serve was called.
func (m *MockService) StartCount() int32 {
	return m.starts.Load()
}

// String identifies the service in suture's event log.
func (m *MockService) String() string {
	return m.name
}
