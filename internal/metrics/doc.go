// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package instruments:
  - HTTP request latency, throughput, and in-flight counts
  - Session lifecycle (starts, answers, TTL expiries)
  - Recommendation pipeline duration, degradation, and fallback paths
  - Surprise injection, refinement, and quick-adjust counts
  - Cache hit/miss rates for the embedding, result, enrichment, and
    question caches
  - Circuit breaker state for the vector index client
  - Analytics writer queue depth and drop counts

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

	metrics.RecordAPIRequest("POST", "/api/v1/moments/start", "200", 23*time.Millisecond)
	metrics.RecordPipelineRun("movies", false, 340*time.Millisecond)
	metrics.RecordCacheAccess("embedding", true)

Example PromQL queries:

	# Request rate
	rate(api_requests_total[5m])

	# p95 pipeline latency
	histogram_quantile(0.95, rate(pipeline_duration_seconds_bucket[5m]))

	# Degraded run ratio
	sum(rate(pipeline_runs_total{degraded="true"}[5m]))
	/
	sum(rate(pipeline_runs_total[5m]))

	# Embedding cache hit rate
	rate(cache_hits_total{cache_type="embedding"}[5m])
	/
	(rate(cache_hits_total{cache_type="embedding"}[5m]) + rate(cache_misses_total{cache_type="embedding"}[5m]))

# Cardinality Management

Labels are drawn from closed sets only: domains, flows, surprise strategies,
adjustment names, fault codes. Session identifiers and free-text values are
never used as labels. Endpoint labels use the chi route pattern, not the
concrete URL, so path parameters do not multiply series.

# Thread Safety

All metric recording functions are safe for concurrent use; synchronization
is handled by the Prometheus client library.
*/
package metrics
