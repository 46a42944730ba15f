// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package supervisor provides Suture-based process supervision for
// Cinemoment's long-running services.
//
// The tree has a root supervisor and three layer supervisors:
//
//	cinemoment
//	├── data-layer       badger value-log GC
//	├── analytics-layer  analytics event writer
//	└── api-layer        HTTP server
//
// Services that crash are restarted by their layer supervisor with
// exponential backoff once the failure threshold is exceeded. Supervisor
// events (restarts, backoff, failures) are logged through sutureslog into
// the application's zerolog pipeline via logging.NewSlogHandler.
//
// Services must implement suture.Service: a Serve(ctx) method that blocks
// until the context is canceled, and a String() method naming the service
// in log output. The services subpackage holds wrappers that adapt
// non-suture components (http.Server, the badger DB) to this contract.
package supervisor
