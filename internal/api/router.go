// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinemoment/internal/middleware"
)

// RouterConfig carries the transport-level knobs the router needs.
type RouterConfig struct {
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
}

// NewRouter assembles the chi router: middleware stack, moment endpoints,
// health endpoints, and /metrics.
func NewRouter(h *Handler, health *Health, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", health.Live)
		r.Get("/health/ready", health.Ready)
		r.Get("/domains", h.Domains)

		r.Route("/moments", func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(cfg.RateLimit, cfg.RateWindow))

			r.Post("/start", h.Start)
			r.Post("/answer/{sessionId}", h.Answer)
			r.Post("/refine/{sessionId}", h.Refine)
			r.Post("/adjust/{sessionId}", h.Adjust)
			r.Post("/interaction/{sessionId}", h.Interaction)
			r.Get("/{sessionId}", h.Moment)
		})
	})

	return r
}
