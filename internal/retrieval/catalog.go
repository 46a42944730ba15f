// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package retrieval

import (
	"context"
	"sort"

	"github.com/tomtom215/cinemoment/internal/models"
)

// CatalogFallback serves searches from the embedded catalog when the vector
// index is unreachable. It filters locally against the predicate and orders
// by quality desc, vote count desc. No network involved.
type CatalogFallback struct {
	byDomain map[models.Domain][]models.Candidate
}

// NewCatalogFallback builds the fallback over the embedded dataset.
func NewCatalogFallback() *CatalogFallback {
	return &CatalogFallback{byDomain: builtinCatalog}
}

// Search filters and ranks the embedded catalog. The query text and vector
// are ignored; only the domain, predicate, and topK matter. Similarity is a
// synthetic rank-decreasing score so downstream scoring still works.
func (c *CatalogFallback) Search(_ context.Context, q Query) ([]models.Candidate, error) {
	pool := c.byDomain[q.Domain]
	if pool == nil {
		pool = c.byDomain[models.DomainMovies]
	}

	matched := make([]models.Candidate, 0, len(pool))
	for _, cand := range pool {
		if q.Filters.Matches(cand) {
			matched = append(matched, cand)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Rating != matched[j].Rating {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].VoteCount > matched[j].VoteCount
	})

	topK := q.TopK
	if topK <= 0 {
		topK = 20
	}
	if len(matched) > topK {
		matched = matched[:topK]
	}

	// Synthetic similarity, decreasing with rank.
	for i := range matched {
		matched[i].Similarity = 0.75 - float64(i)*0.01
		if matched[i].Similarity < 0.1 {
			matched[i].Similarity = 0.1
		}
	}
	return matched, nil
}
