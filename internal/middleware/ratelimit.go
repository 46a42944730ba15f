// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	json "github.com/goccy/go-json"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/metrics"
	"github.com/tomtom215/cinemoment/internal/models"
)

// RateLimitByIP limits each client IP to limit requests per window. Rejected
// requests get a structured RATE_LIMITED error with a Retry-After hint.
// Limiting is per-IP, not per-session, so one busy client cannot starve
// everyone behind the same deployment.
func RateLimitByIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	retryAfter := int(window.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(models.APIError{
				Error:      "too many requests",
				Code:       string(faults.CodeRateLimited),
				RetryAfter: retryAfter,
			})
		}),
	)
}
