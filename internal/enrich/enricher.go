// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinemoment/internal/cache"
	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Enricher hydrates candidates into recommendation items with bounded
// concurrency and a per-item TTL cache. A failed catalog call leaves the
// item carrying only its retrieval metadata; items are never dropped.
type Enricher struct {
	client         CatalogClient
	entries        *cache.Cache[Metadata]
	imageBase      string
	concurrency    int
	perItemTimeout time.Duration
	logger         zerolog.Logger
}

// NewEnricher builds an enricher. A nil client disables catalog fetches;
// everything then comes from retrieval metadata alone.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEnricher(client CatalogClient, cfg config.EnrichConfig, logger zerolog.Logger) *Enricher {
	ttl := cfg.CacheTTL
	if ttl <= 0 || ttl > 24*time.Hour {
		ttl = 24 * time.Hour
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 || concurrency > 8 {
		concurrency = 8
	}
	perItem := cfg.PerItemTimeout
	if perItem <= 0 {
		perItem = 1500 * time.Millisecond
	}
	return &Enricher{
		client:         client,
		entries:        cache.New[Metadata](ttl),
		imageBase:      strings.TrimRight(cfg.ImageBaseURL, "/"),
		concurrency:    concurrency,
		perItemTimeout: perItem,
		logger:         logger.With().Str("component", "enrich").Logger(),
	}
}

// Enrich hydrates every candidate, preserving input order. The returned
// items have no ranks; ranking happens after surprise mixing.
func (e *Enricher) Enrich(ctx context.Context, candidates []models.Candidate) []models.RecommendationItem {
	items := make([]models.RecommendationItem, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, cand := range candidates {
		g.Go(func() error {
			items[i] = e.enrichOne(gctx, cand)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func (e *Enricher) enrichOne(ctx context.Context, cand models.Candidate) models.RecommendationItem {
	item := models.RecommendationItem{Candidate: cand}

	meta, ok := e.lookup(ctx, cand)
	if !ok {
		// Best effort: fall back to whatever retrieval carried.
		e.applyMetadata(&item, Metadata{
			PosterPath:   cand.PosterPath,
			BackdropPath: cand.BackdropPath,
			Overview:     cand.Overview,
		})
		return item
	}

	e.applyMetadata(&item, meta)
	return item
}

// lookup resolves metadata through the per-item cache.
func (e *Enricher) lookup(ctx context.Context, cand models.Candidate) (Metadata, bool) {
	if e.client == nil {
		return Metadata{}, false
	}

	key := string(domainOf(cand)) + ":" + cand.ID
	if hit, ok := e.entries.Get(key); ok {
		return hit, true
	}

	itemCtx, cancel := context.WithTimeout(ctx, e.perItemTimeout)
	defer cancel()

	meta, err := e.client.Item(itemCtx, domainOf(cand), cand.ID)
	if err != nil {
		e.logger.Debug().Err(err).Str("item_id", cand.ID).Msg("catalog fetch failed, keeping retrieval fields")
		return Metadata{}, false
	}

	e.entries.Set(key, meta)
	return meta, true
}

// applyMetadata maps catalog fields onto the item's canonical names. Image
// paths become absolute URLs under the configured image base.
func (e *Enricher) applyMetadata(item *models.RecommendationItem, meta Metadata) {
	if meta.PosterPath != "" {
		item.PosterURL = e.imageURL(meta.PosterPath)
	} else if item.PosterPath != "" {
		item.PosterURL = e.imageURL(item.PosterPath)
	}
	if meta.BackdropPath != "" {
		item.BackdropURL = e.imageURL(meta.BackdropPath)
	} else if item.BackdropPath != "" {
		item.BackdropURL = e.imageURL(item.BackdropPath)
	}

	switch {
	case meta.Overview != "":
		item.Synopsis = meta.Overview
	case item.Overview != "":
		item.Synopsis = item.Overview
	default:
		item.Synopsis = "Synopsis unavailable"
	}

	item.Cast = meta.Cast
	item.StreamingOn = meta.Providers
}

func (e *Enricher) imageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.imageBase + path
}

// domainOf guesses the domain from the candidate ID prefix assigned by the
// index (mv-, tv-, doc-). Unknown prefixes default to movies.
func domainOf(cand models.Candidate) models.Domain {
	switch {
	case strings.HasPrefix(cand.ID, "tv-"):
		return models.DomainTVSeries
	case strings.HasPrefix(cand.ID, "doc-"):
		return models.DomainDocumentaries
	default:
		return models.DomainMovies
	}
}

// Stats exposes cache counters for metrics.
func (e *Enricher) Stats() cache.Stats {
	return e.entries.GetStats()
}

// Close stops the cache sweep.
func (e *Enricher) Close() {
	e.entries.Stop()
}
