// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package services contains suture.Service wrappers for components that do
// not natively speak suture's Serve(ctx) contract: the HTTP server and the
// badger value-log GC loop. The analytics writer implements suture.Service
// directly and is added to the tree without a wrapper.
package services
