// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package ebird

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/avocet/internal/logging"
	"github.com/tomtom215/avocet/internal/metrics"
	"github.com/tomtom215/avocet/internal/models"
)

const breakerName = "ebird-api"

// Compile-time interface check
var _ ClientInterface = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps an eBird client with a circuit breaker so a
// degraded upstream API fails fast instead of stalling snapshot refreshes
// behind timeouts.
//
// The breaker opens when at least 10 requests have been observed in the
// rolling interval and 60% or more of them failed. After 2 minutes it
// transitions to half-open and allows 3 probe requests through.
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps the given client with circuit breaker
// protection.
func NewCircuitBreakerClient(client ClientInterface) *CircuitBreakerClient {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", breakerName).
					Uint32("requests", counts.Requests).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_ratio", failureRatio).
					Msg("Circuit breaker tripping due to high failure ratio")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	}

	return &CircuitBreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[interface{}](settings),
		name:   breakerName,
	}
}

// NearbyHotspots delegates to the wrapped client through the breaker.
func (c *CircuitBreakerClient) NearbyHotspots(ctx context.Context, lat, lng, radiusKm float64) ([]models.Location, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.NearbyHotspots(ctx, lat, lng, radiusKm)
	})
	if err != nil {
		return nil, err
	}
	return castResult[[]models.Location](result)
}

// RecentObservations delegates to the wrapped client through the breaker.
func (c *CircuitBreakerClient) RecentObservations(ctx context.Context, locationID string, backDays int) ([]models.ObservationRecord, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.RecentObservations(ctx, locationID, backDays)
	})
	if err != nil {
		return nil, err
	}
	return castResult[[]models.ObservationRecord](result)
}

// State returns the current breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

// Counts returns the breaker's rolling request counts.
func (c *CircuitBreakerClient) Counts() gobreaker.Counts {
	return c.cb.Counts()
}

// Name returns the breaker name used in logs and metrics.
func (c *CircuitBreakerClient) Name() string {
	return c.name
}

func (c *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			return nil, fmt.Errorf("circuit breaker open: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	return result, nil
}

// castResult converts a breaker result back to its concrete type. The
// assertion only fails on a programming error in the wrapper methods.
func castResult[T any](result interface{}) (T, error) {
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
