// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// counterValue reads the current value of a plain counter
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

// gaugeValue reads the current value of a plain gauge
func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful recommendations request",
			method:     "GET",
			endpoint:   "/api/v1/recommendations",
			statusCode: "200",
			duration:   15 * time.Millisecond,
		},
		{
			name:       "life list mutation",
			method:     "POST",
			endpoint:   "/api/v1/lifelist/species",
			statusCode: "200",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "validation rejection",
			method:     "GET",
			endpoint:   "/api/v1/recommendations",
			statusCode: "400",
			duration:   time.Millisecond,
		},
		{
			name:       "refresh conflict",
			method:     "POST",
			endpoint:   "/api/v1/snapshot/refresh",
			statusCode: "409",
			duration:   500 * time.Microsecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the request - should not panic
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

// TestTrackActiveRequest tests active request gauge movement
func TestTrackActiveRequest(t *testing.T) {
	before := gaugeValue(t, APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := gaugeValue(t, APIActiveRequests); got != before+2 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := gaugeValue(t, APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v after balanced inc/dec", got, before)
	}
}

// TestRecordRecommendationPass tests engine pass recording
func TestRecordRecommendationPass(t *testing.T) {
	before := counterValue(t, RecommendationPasses)

	RecordRecommendationPass(2*time.Millisecond, 42)
	RecordRecommendationPass(500*time.Microsecond, 0)

	if got := counterValue(t, RecommendationPasses); got != before+2 {
		t.Errorf("RecommendationPasses = %v, want %v", got, before+2)
	}
}

// TestRecordEBirdRequest tests upstream call recording
func TestRecordEBirdRequest(t *testing.T) {
	endpoints := []struct {
		endpoint   string
		statusCode string
	}{
		{"hotspots", "200"},
		{"observations", "200"},
		{"observations", "429"},
		{"observations", "500"},
	}

	for _, e := range endpoints {
		RecordEBirdRequest(e.endpoint, e.statusCode, 100*time.Millisecond)
	}
}

// TestRecordSnapshotRefresh tests refresh outcome recording
func TestRecordSnapshotRefresh(t *testing.T) {
	t.Run("success updates gauges", func(t *testing.T) {
		refreshesBefore := counterValue(t, SnapshotRefreshes)

		RecordSnapshotRefresh(5*time.Second, 37, 112, nil)

		if got := counterValue(t, SnapshotRefreshes); got != refreshesBefore+1 {
			t.Errorf("SnapshotRefreshes = %v, want %v", got, refreshesBefore+1)
		}
		if got := gaugeValue(t, SnapshotLocations); got != 37 {
			t.Errorf("SnapshotLocations = %v, want 37", got)
		}
		if got := gaugeValue(t, SnapshotSpecies); got != 112 {
			t.Errorf("SnapshotSpecies = %v, want 112", got)
		}
		if got := gaugeValue(t, SnapshotLastRefresh); got == 0 {
			t.Error("SnapshotLastRefresh should be set after success")
		}
	})

	t.Run("failure categorizes error", func(t *testing.T) {
		refreshesBefore := counterValue(t, SnapshotRefreshes)

		RecordSnapshotRefresh(time.Second, 0, 0, errors.New("hotspot query failed: 503"))
		RecordSnapshotRefresh(time.Second, 0, 0, errors.New("observation fetch for L123: timeout"))
		RecordSnapshotRefresh(time.Second, 0, 0, errors.New("context canceled"))

		// Failures never count as refreshes
		if got := counterValue(t, SnapshotRefreshes); got != refreshesBefore {
			t.Errorf("SnapshotRefreshes = %v, want %v (unchanged)", got, refreshesBefore)
		}
	})
}

// TestRecordLifeListOperation tests life list mutation recording
func TestRecordLifeListOperation(t *testing.T) {
	RecordLifeListOperation("add", 12)
	if got := gaugeValue(t, LifeListSize); got != 12 {
		t.Errorf("LifeListSize = %v, want 12", got)
	}

	RecordLifeListOperation("remove", 11)
	if got := gaugeValue(t, LifeListSize); got != 11 {
		t.Errorf("LifeListSize = %v, want 11", got)
	}

	RecordLifeListOperation("replace", 40)
	if got := gaugeValue(t, LifeListSize); got != 40 {
		t.Errorf("LifeListSize = %v, want 40", got)
	}
}

// TestConcurrentMetricRecording exercises the helpers from many goroutines
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 100
	operationsPerGoroutine := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("GET", "/api/v1/recommendations", "200", time.Duration(j)*time.Millisecond)
			}
		}()
	}

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordEBirdRequest("observations", "200", time.Millisecond)
			}
		}()
	}

	wg.Wait()
}

// TestMetricsRegistration verifies all metrics describe themselves
func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendationDuration,
		RecommendationLocationsScored,
		RecommendationPasses,
		EBirdRequestsTotal,
		EBirdRequestDuration,
		EBirdRetriesTotal,
		EBirdRateLimited,
		SnapshotRefreshDuration,
		SnapshotRefreshes,
		SnapshotRefreshErrors,
		SnapshotLastRefresh,
		SnapshotLocations,
		SnapshotSpecies,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		LifeListSize,
		LifeListOperations,
		AppInfo,
		AppUptime,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)
	RecordEBirdRequest("hotspots", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
