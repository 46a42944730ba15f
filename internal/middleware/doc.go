// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

/*
Package middleware provides HTTP middleware components for the API server.

Key components:

  - RequestID: UUID-based request tracking threaded into the logging context
  - PrometheusMetrics: request counts, latency, and in-flight instrumentation
  - Compression: gzip for clients that accept it
  - RateLimitByIP: per-IP limiting with structured RATE_LIMITED responses
  - PerformanceMonitor: sliding-window latency percentiles for operators

Middleware stack:

The router applies middleware outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
	r.Use(middleware.RateLimitByIP(100, time.Minute))

Rate limiting uses go-chi/httprate keyed by client IP. Rejections carry the
RATE_LIMITED taxonomy code and a Retry-After header so clients can back off
without parsing prose.

The Prometheus middleware labels endpoints with the chi route pattern rather
than the raw URL, keeping series cardinality bounded regardless of how many
session IDs pass through the path.

All components are safe for concurrent use.
*/
package middleware
