// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package retrieval talks to the vector index: an HTTP client with circuit
// breaker and retry, a TTL result cache keyed by query fingerprints, and a
// catalog-backed fallback that works without the index entirely.
package retrieval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/embedding"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Query is one search against the index. Either Text or Vector is set; when
// both are present the vector wins (it is cheaper for the index).
type Query struct {
	Domain  models.Domain
	Text    string
	Vector  embedding.Vector
	Filters models.FilterPredicate
	TopK    int
}

// Searcher is the retrieval contract shared by the HTTP client, the result
// cache wrapper, and the catalog fallback.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]models.Candidate, error)
}

// Client executes searches against the vector index over HTTP. Failures pass
// through a circuit breaker; transient network errors get a single jittered
// retry. An open breaker or exhausted retries surface as UNAVAILABLE so the
// orchestrator can switch to the catalog fallback.
type Client struct {
	baseURL    string
	apiKey     string
	topK       int
	maxTopK    int
	maxRetries int
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]models.Candidate]
	logger     zerolog.Logger
}

// NewClient builds the index client from config. The breaker opens after a
// 60% failure rate over at least 5 requests and probes again after 30s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.RetrievalConfig, logger zerolog.Logger) *Client {
	log := logger.With().Str("component", "retrieval").Logger()

	name := cfg.BreakerName
	if name == "" {
		name = "vector-index"
	}

	cb := gobreaker.NewCircuitBreaker[[]models.Candidate](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("circuit breaker state transition")
		},
	})

	return &Client{
		baseURL:    cfg.IndexURL,
		apiKey:     cfg.IndexAPIKey,
		topK:       cfg.TopK,
		maxTopK:    cfg.MaxTopK,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb:         cb,
		logger:     log,
	}
}

// searchRequest is the index's wire format.
type searchRequest struct {
	Query  string         `json:"query,omitempty"`
	Vector []float32      `json:"vector,omitempty"`
	Filter map[string]any `json:"filter,omitempty"`
	TopK   int            `json:"topK"`
}

type searchResponse struct {
	Results []indexHit `json:"results"`
}

type indexHit struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	Rating     float64  `json:"vote_average"`
	Popularity float64  `json:"popularity"`
	VoteCount  int      `json:"vote_count"`
	Runtime    int      `json:"runtime"`
	Score      float64  `json:"score"`

	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`
	Overview     string `json:"overview,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
}

// Search runs one query through the breaker with a single jittered retry on
// transient failure. An empty result set is a valid answer, not an error.
func (c *Client) Search(ctx context.Context, q Query) ([]models.Candidate, error) {
	candidates, err := c.cb.Execute(func() ([]models.Candidate, error) {
		return c.searchWithRetry(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, faults.Unavailable("vector index circuit open", err)
		}
		return nil, faults.Unavailable("vector index unreachable", err)
	}
	return candidates, nil
}

func (c *Client) searchWithRetry(ctx context.Context, q Query) ([]models.Candidate, error) {
	retries := c.maxRetries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			// Jittered backoff before the retry; abandoned if the request
			// deadline fires first.
			backoff := 100*time.Millisecond + time.Duration(rand.Int63n(int64(150*time.Millisecond)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			c.logger.Debug().Int("attempt", attempt).Msg("retrying index search")
		}

		candidates, err := c.doSearch(ctx, q)
		if err == nil {
			return candidates, nil
		}
		lastErr = err

		// Deadline exhaustion will not improve on retry.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) doSearch(ctx context.Context, q Query) ([]models.Candidate, error) {
	req := searchRequest{
		Filter: filterDialect(q.Domain, q.Filters),
		TopK:   c.clampTopK(q.TopK),
	}
	if len(q.Vector) > 0 {
		req.Vector = q.Vector
	} else {
		req.Query = q.Text
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("index search: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(parsed.Results))
	for _, hit := range parsed.Results {
		candidates = append(candidates, models.Candidate{
			ID:             hit.ID,
			Title:          hit.Title,
			Year:           hit.Year,
			Genres:         hit.Genres,
			Rating:         hit.Rating,
			Popularity:     hit.Popularity,
			VoteCount:      hit.VoteCount,
			RuntimeMinutes: hit.Runtime,
			Similarity:     clampSimilarity(hit.Score),
			PosterPath:     hit.PosterPath,
			BackdropPath:   hit.BackdropPath,
			Overview:       hit.Overview,
			ReleaseDate:    hit.ReleaseDate,
		})
	}
	return candidates, nil
}

func (c *Client) clampTopK(k int) int {
	if k <= 0 {
		k = c.topK
	}
	if k <= 0 {
		k = 20
	}
	if c.maxTopK > 0 && k > c.maxTopK {
		k = c.maxTopK
	}
	return k
}

// filterDialect translates the predicate into the index's metadata filter
// language: field → operator map, conjunctive across fields.
func filterDialect(domain models.Domain, f models.FilterPredicate) map[string]any {
	dialect := make(map[string]any)
	if domain != "" {
		dialect["media_type"] = map[string]any{"$eq": string(domain)}
	}

	yearOps := make(map[string]any)
	if f.MinYear > 0 {
		yearOps["$gte"] = f.MinYear
	}
	if f.MaxYear > 0 {
		yearOps["$lte"] = f.MaxYear
	}
	if len(yearOps) > 0 {
		dialect["year"] = yearOps
	}

	if f.MinRating > 0 {
		dialect["vote_average"] = map[string]any{"$gte": f.MinRating}
	}
	if f.MinVotes > 0 {
		dialect["vote_count"] = map[string]any{"$gte": f.MinVotes}
	}

	runtimeOps := make(map[string]any)
	if f.MinRuntime > 0 {
		runtimeOps["$gte"] = f.MinRuntime
	}
	if f.MaxRuntime > 0 {
		runtimeOps["$lte"] = f.MaxRuntime
	}
	if len(runtimeOps) > 0 {
		dialect["runtime"] = runtimeOps
	}

	popOps := make(map[string]any)
	if f.MinPopularity > 0 {
		popOps["$gte"] = f.MinPopularity
	}
	if f.MaxPopularity > 0 {
		popOps["$lte"] = f.MaxPopularity
	}
	if len(popOps) > 0 {
		dialect["popularity"] = popOps
	}

	if len(f.IncludeGenres) > 0 {
		dialect["genres"] = map[string]any{"$in": f.IncludeGenres}
	}
	if len(f.ExcludeGenres) > 0 {
		dialect["genres_excluded"] = map[string]any{"$nin": f.ExcludeGenres}
	}
	return dialect
}

func clampSimilarity(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
