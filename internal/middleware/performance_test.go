// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPerformanceMonitorRecordsAndAggregates(t *testing.T) {
	pm := NewPerformanceMonitor(100)

	durations := []int64{10, 20, 30, 40, 50}
	for _, d := range durations {
		pm.RecordRequest(&RequestMetrics{
			Path:       "/api/v1/moments/start",
			Method:     "POST",
			DurationMS: d,
			StatusCode: http.StatusOK,
			Timestamp:  time.Now(),
		})
	}

	stats := pm.GetStats()
	if len(stats) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(stats))
	}
	s := stats[0]
	if s.RequestCount != 5 {
		t.Errorf("count = %d, want 5", s.RequestCount)
	}
	if s.AvgDuration != 30 {
		t.Errorf("avg = %.1f, want 30", s.AvgDuration)
	}
	if s.MinDuration != 10 || s.MaxDuration != 50 {
		t.Errorf("min/max = %d/%d, want 10/50", s.MinDuration, s.MaxDuration)
	}
	if s.P50Duration != 30 {
		t.Errorf("p50 = %d, want 30", s.P50Duration)
	}
}

func TestPerformanceMonitorWindowBound(t *testing.T) {
	pm := NewPerformanceMonitor(10)

	for i := 0; i < 25; i++ {
		pm.RecordRequest(&RequestMetrics{
			Path:       "/api/v1/moments/answer",
			Method:     "POST",
			DurationMS: int64(i),
		})
	}

	recent := pm.GetRecentMetrics(100)
	if len(recent) != 10 {
		t.Fatalf("window holds %d metrics, want 10", len(recent))
	}
	// Oldest entries evicted: the window should hold 15..24.
	if recent[0].DurationMS != 15 {
		t.Errorf("oldest retained = %d, want 15", recent[0].DurationMS)
	}
}

func TestPerformanceMonitorSortsByTraffic(t *testing.T) {
	pm := NewPerformanceMonitor(100)

	for i := 0; i < 3; i++ {
		pm.RecordRequest(&RequestMetrics{Path: "/quiet", Method: "GET", DurationMS: 5})
	}
	for i := 0; i < 10; i++ {
		pm.RecordRequest(&RequestMetrics{Path: "/busy", Method: "GET", DurationMS: 5})
	}

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}
	if stats[0].Path != "GET /busy" {
		t.Errorf("busiest first: got %q", stats[0].Path)
	}
}

func TestPerformanceMiddleware(t *testing.T) {
	pm := NewPerformanceMonitor(10)
	handler := pm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/domains", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatal("middleware did not record the request")
	}
	if recent[0].Path != "/api/v1/domains" {
		t.Errorf("path = %q", recent[0].Path)
	}
	if recent[0].StatusCode != http.StatusOK {
		t.Errorf("status = %d", recent[0].StatusCode)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []int64
		p      float64
		want   int64
	}{
		{"empty", nil, 0.95, 0},
		{"single", []int64{7}, 0.5, 7},
		{"p50 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.50, 5},
		{"p95 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 9},
		{"p99 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.99, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("percentile() = %d, want %d", got, tt.want)
			}
		})
	}
}
