// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package enrich hydrates retrieval candidates with catalog metadata. It is
// strictly best-effort: a dead catalog degrades the list, never empties it.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Metadata is what the catalog knows about one item.
type Metadata struct {
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	Overview     string   `json:"overview"`
	Cast         []string `json:"cast"`
	Providers    []string `json:"watch_providers"`
}

// CatalogClient fetches per-item metadata.
type CatalogClient interface {
	Item(ctx context.Context, domain models.Domain, id string) (Metadata, error)
}

// HTTPCatalog is the catalog client over HTTP with a client-side rate
// limiter. The catalog provider enforces its own limits too; ours keeps us
// from tripping theirs during enrichment fan-out.
type HTTPCatalog struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPCatalog builds the client from config.
func NewHTTPCatalog(cfg config.EnrichConfig) *HTTPCatalog {
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}
	timeout := cfg.PerItemTimeout
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &HTTPCatalog{
		baseURL:    cfg.CatalogURL,
		apiKey:     cfg.CatalogAPIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Item fetches metadata for one catalog entry, waiting on the rate limiter
// first. The wait respects the caller's deadline.
func (c *HTTPCatalog) Item(ctx context.Context, domain models.Domain, id string) (Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Metadata{}, fmt.Errorf("catalog rate wait: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/items/%s/%s", c.baseURL, url.PathEscape(string(domain)), url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("build catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("catalog fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Metadata{}, fmt.Errorf("catalog fetch %s: status %d", id, resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return Metadata{}, fmt.Errorf("decode catalog response: %w", err)
	}
	return meta, nil
}
