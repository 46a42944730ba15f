// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package api is the HTTP surface: a chi router over the moment endpoints,
// health probes, and /metrics.
//
// Endpoints (all JSON):
//
//	POST /api/v1/moments/start                    begin a questionnaire
//	POST /api/v1/moments/answer/{sessionId}       record an answer
//	POST /api/v1/moments/refine/{sessionId}       per-item feedback refinement
//	POST /api/v1/moments/adjust/{sessionId}       named quick adjustment
//	POST /api/v1/moments/interaction/{sessionId}  record an item interaction
//	GET  /api/v1/moments/{sessionId}              moment summary
//	GET  /api/v1/domains                          supported domains
//	GET  /api/v1/health/live, /health/ready       probes
//	GET  /metrics                                 Prometheus
//
// Every error response is the stable {error, code, details?, retryAfter?}
// body with the HTTP status derived from the faults taxonomy. Handlers stay
// thin: decode, validate, call the orchestrator or store, encode.
package api
