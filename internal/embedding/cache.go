// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package embedding

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinemoment/internal/cache"
)

// Result is a resolved vector and its provenance.
type Result struct {
	Vector Vector
	Source Source
}

// Cache deduplicates equivalent embedding requests. Concurrent callers with
// the same fingerprint collapse to a single downstream call; entries live
// for the configured TTL (24h by default). When the provider is absent or
// failing, the deterministic fallback vector is returned instead — that path
// never touches the network.
type Cache struct {
	provider Provider // nil means fallback-only
	entries  *cache.Cache[Result]
	group    singleflight.Group
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewCache creates an embedding cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCache(provider Provider, ttl, timeout time.Duration, logger zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Cache{
		provider: provider,
		entries:  cache.New[Result](ttl),
		timeout:  timeout,
		logger:   logger.With().Str("component", "embedding").Logger(),
	}
}

// Vector resolves the embedding for a fingerprint key. The queryText is what
// a provider embeds; traits feed the deterministic fallback. Repeated calls
// within TTL return bit-identical vectors.
func (c *Cache) Vector(ctx context.Context, key, queryText string, traits map[string]float64) (Result, error) {
	if hit, ok := c.entries.Get(key); ok {
		return Result{Vector: hit.Vector, Source: SourceCache}, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another flight may have populated the cache while we queued.
		if hit, ok := c.entries.Get(key); ok {
			return Result{Vector: hit.Vector, Source: SourceCache}, nil
		}

		result := c.resolve(ctx, queryText, traits)
		c.entries.Set(key, result)
		return result, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

// resolve calls the provider with a deadline, falling back deterministically
// on absence or failure.
func (c *Cache) resolve(ctx context.Context, queryText string, traits map[string]float64) Result {
	if c.provider == nil {
		return Result{Vector: FallbackVector(traits), Source: SourceFallback}
	}

	embedCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vec, err := c.provider.Embed(embedCtx, queryText)
	if err != nil {
		c.logger.Warn().Err(err).Str("provider", c.provider.Name()).
			Msg("embedding provider failed, using trait fallback")
		return Result{Vector: FallbackVector(traits), Source: SourceFallback}
	}
	return Result{Vector: vec, Source: SourceProvider}
}

// Stats exposes cache counters for metrics.
func (c *Cache) Stats() cache.Stats {
	return c.entries.GetStats()
}

// Close stops the underlying cache sweep.
func (c *Cache) Close() {
	c.entries.Stop()
}
