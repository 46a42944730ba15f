// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package api

import (
	"context"
	"net/http"
	"time"
)

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// Health serves liveness and readiness. Liveness is unconditional; readiness
// runs the registered dependency checks with a short deadline.
type Health struct {
	checks map[string]CheckFunc
}

// NewHealth creates the health endpoints over a named set of checks.
func NewHealth(checks map[string]CheckFunc) *Health {
	if checks == nil {
		checks = map[string]CheckFunc{}
	}
	return &Health{checks: checks}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live reports process liveness.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready reports dependency readiness: 200 when every check passes, 503 with
// per-check detail otherwise.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Checks: results}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "degraded"
	}
	respondJSON(w, r, status, resp)
}
