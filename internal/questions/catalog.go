// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package questions implements the question catalog: a persistent store with
// a warm TTL cache in front and a built-in fallback set behind. GetQuestions
// never returns an empty list.
package questions

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/cache"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Store is the persistent backend for curated question sets.
type Store interface {
	// LoadQuestions returns the ordered question set for a domain, or
	// (nil, nil) when the domain has no curated set.
	LoadQuestions(ctx context.Context, domain models.Domain) ([]models.Question, error)

	// SaveQuestions replaces the curated set for a domain.
	SaveQuestions(ctx context.Context, domain models.Domain, qs []models.Question) error
}

// Catalog serves question sets with a warm cache and builtin fallback.
type Catalog struct {
	store  Store
	cache  *cache.Cache[[]models.Question]
	logger zerolog.Logger
}

// NewCatalog creates a catalog. store may be nil, in which case only the
// builtin sets are served.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalog(store Store, cacheTTL time.Duration, logger zerolog.Logger) *Catalog {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Catalog{
		store:  store,
		cache:  cache.New[[]models.Question](cacheTTL),
		logger: logger.With().Str("component", "questions").Logger(),
	}
}

// GetQuestions returns the ordered question set for a domain. Resolution
// order: warm cache, persistent store, builtin fallback. Store errors are
// logged and absorbed; the builtin set guarantees a non-empty result.
func (c *Catalog) GetQuestions(ctx context.Context, domain models.Domain) []models.Question {
	key := "questions:" + string(domain)
	if qs, ok := c.cache.Get(key); ok {
		return cloneQuestions(qs)
	}

	if c.store != nil {
		qs, err := c.store.LoadQuestions(ctx, domain)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("domain", string(domain)).
				Msg("question store unavailable, using builtin set")
		case len(qs) > 0:
			c.cache.Set(key, qs)
			return cloneQuestions(qs)
		}
	}

	qs := BuiltinQuestions(domain)
	c.cache.Set(key, qs)
	return cloneQuestions(qs)
}

// Invalidate drops the cached set for a domain.
func (c *Catalog) Invalidate(domain models.Domain) {
	c.cache.Delete("questions:" + string(domain))
}

// Close stops the warm cache's background sweep.
func (c *Catalog) Close() {
	c.cache.Stop()
}

// cloneQuestions copies the slice so callers cannot mutate cached state.
func cloneQuestions(qs []models.Question) []models.Question {
	out := make([]models.Question, len(qs))
	copy(out, qs)
	return out
}
