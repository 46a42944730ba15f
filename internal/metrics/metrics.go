// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Session lifecycle metrics.
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_started_total",
			Help: "Total number of recommendation sessions started",
		},
		[]string{"domain", "flow"},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of sessions that hit a TTL expiry on access",
		},
	)

	AnswersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_recorded_total",
			Help: "Total number of questionnaire answers recorded",
		},
	)

	// Pipeline metrics.
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"domain"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"domain", "degraded"},
	)

	RetrievalFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_fallbacks_total",
			Help: "Total number of retrieval fallbacks taken",
		},
		[]string{"fallback"}, // "llm", "catalog"
	)

	SurpriseInjections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surprise_injections_total",
			Help: "Total number of surprise items injected into lists",
		},
		[]string{"strategy", "kind"},
	)

	RefinementsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refinements_applied_total",
			Help: "Total number of refinement rounds applied",
		},
		[]string{"strategy"},
	)

	QuickAdjustsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quick_adjusts_applied_total",
			Help: "Total number of quick adjustments applied",
		},
		[]string{"adjustment"},
	)

	// Cache metrics, shared by the embedding, retrieval result, enrichment,
	// and question catalog caches.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "embedding", "results", "enrich", "questions"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// Circuit breaker metrics for the vector index client.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Embedding provider metrics.
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Total number of embedding resolutions by source",
		},
		[]string{"source"}, // "provider", "fallback", "cache"
	)

	EmbeddingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "embedding_provider_duration_seconds",
			Help:    "Duration of embedding provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Analytics writer metrics.
	AnalyticsEventsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_events_written_total",
			Help: "Total number of analytics events written to the sink",
		},
	)

	AnalyticsEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_events_dropped_total",
			Help: "Total number of analytics events dropped on queue overflow",
		},
	)

	AnalyticsQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_queue_depth",
			Help: "Current depth of the analytics event queue",
		},
	)

	// System metrics.
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPipelineRun records one pipeline run outcome.
func RecordPipelineRun(domain string, degraded bool, duration time.Duration) {
	degradedStr := "false"
	if degraded {
		degradedStr = "true"
	}
	PipelineRuns.WithLabelValues(domain, degradedStr).Inc()
	PipelineDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

// RecordCacheAccess records a hit or miss on a named cache.
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
