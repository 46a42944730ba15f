// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package embedding owns query vectors: a single-flight TTL cache in front
// of an optional provider, with a deterministic trait-weighted fallback that
// needs no network at all.
package embedding

import "context"

// Vector is a query embedding. The service-wide width is fixed at 1536.
type Vector []float32

// Provider produces embeddings for query text. Implementations must be
// deterministic for identical inputs within a deployment.
type Provider interface {
	Embed(ctx context.Context, text string) (Vector, error)
	Name() string
}

// Source records where a vector came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
	SourceCache    Source = "cache"
)
