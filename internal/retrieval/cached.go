// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"strconv"
	"time"

	"github.com/tomtom215/cinemoment/internal/cache"
	"github.com/tomtom215/cinemoment/internal/models"
)

// CachedSearcher wraps a Searcher with a TTL result cache keyed by the query
// and filter fingerprints. Only successful searches are written; a hit
// returns the stored candidate order untouched.
type CachedSearcher struct {
	inner   Searcher
	entries *cache.Cache[[]models.Candidate]
}

// NewCachedSearcher wraps inner with a result cache. TTL defaults to 1 hour
// and is capped there: stale retrieval orderings must not outlive the hour.
func NewCachedSearcher(inner Searcher, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 || ttl > time.Hour {
		ttl = time.Hour
	}
	return &CachedSearcher{
		inner:   inner,
		entries: cache.New[[]models.Candidate](ttl),
	}
}

// Search serves from cache when possible, otherwise delegates and stores the
// result. Callers get a copy of cached slices so downstream mutation cannot
// corrupt the stored order.
func (s *CachedSearcher) Search(ctx context.Context, q Query) ([]models.Candidate, error) {
	key := queryCacheKey(q)

	if hit, ok := s.entries.Get(key); ok {
		out := make([]models.Candidate, len(hit))
		copy(out, hit)
		return out, nil
	}

	candidates, err := s.inner.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	stored := make([]models.Candidate, len(candidates))
	copy(stored, candidates)
	s.entries.Set(key, stored)
	return candidates, nil
}

// Stats exposes cache counters for metrics.
func (s *CachedSearcher) Stats() cache.Stats {
	return s.entries.GetStats()
}

// Close stops the cache sweep.
func (s *CachedSearcher) Close() {
	s.entries.Stop()
}

// queryCacheKey builds the composite key: (query fingerprint, filter
// fingerprint). Vector queries hash the vector bytes; text queries hash the
// text. Domain and topK participate so different shapes never collide.
func queryCacheKey(q Query) string {
	var queryFP string
	if len(q.Vector) > 0 {
		queryFP = fingerprintVector(q.Vector)
	} else {
		queryFP = models.FingerprintQuery(q.Text)
	}
	key := models.QueryKey{Query: queryFP, Filter: q.Filters.Fingerprint()}
	return string(q.Domain) + ":" + key.String() + ":" + strconv.Itoa(q.TopK)
}

func fingerprintVector(v []float32) string {
	h := sha256.New()
	var buf [4]byte
	for _, f := range v {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
