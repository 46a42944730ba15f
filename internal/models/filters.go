// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import "strings"

// FilterPredicate is a conjunction of closed-set constraints applied to
// candidates. The zero value matches everything. Numeric fields use zero as
// the unset sentinel; genre sets are matched case-insensitively.
type FilterPredicate struct {
	MinYear       int      `json:"minYear,omitempty"`
	MaxYear       int      `json:"maxYear,omitempty"`
	MinRating     float64  `json:"minRating,omitempty"`
	MaxRuntime    int      `json:"maxRuntime,omitempty"`
	MinRuntime    int      `json:"minRuntime,omitempty"`
	MinVotes      int      `json:"minVotes,omitempty"`
	MinPopularity float64  `json:"minPopularity,omitempty"`
	MaxPopularity float64  `json:"maxPopularity,omitempty"`
	IncludeGenres []string `json:"includeGenres,omitempty"`
	ExcludeGenres []string `json:"excludeGenres,omitempty"`
}

// IsEmpty reports whether the predicate constrains nothing.
func (f FilterPredicate) IsEmpty() bool {
	return f.MinYear == 0 && f.MaxYear == 0 && f.MinRating == 0 &&
		f.MaxRuntime == 0 && f.MinRuntime == 0 && f.MinVotes == 0 &&
		f.MinPopularity == 0 && f.MaxPopularity == 0 &&
		len(f.IncludeGenres) == 0 && len(f.ExcludeGenres) == 0
}

// Matches evaluates the conjunction against a candidate.
func (f FilterPredicate) Matches(c Candidate) bool {
	if f.MinYear > 0 && c.Year < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && c.Year > f.MaxYear {
		return false
	}
	if f.MinRating > 0 && c.Rating < f.MinRating {
		return false
	}
	if f.MaxRuntime > 0 && c.RuntimeMinutes > 0 && c.RuntimeMinutes > f.MaxRuntime {
		return false
	}
	if f.MinRuntime > 0 && c.RuntimeMinutes > 0 && c.RuntimeMinutes < f.MinRuntime {
		return false
	}
	if f.MinVotes > 0 && c.VoteCount < f.MinVotes {
		return false
	}
	if f.MinPopularity > 0 && c.Popularity < f.MinPopularity {
		return false
	}
	if f.MaxPopularity > 0 && c.Popularity > f.MaxPopularity {
		return false
	}
	if len(f.IncludeGenres) > 0 && !containsAnyGenre(c.Genres, f.IncludeGenres) {
		return false
	}
	if len(f.ExcludeGenres) > 0 && containsAnyGenre(c.Genres, f.ExcludeGenres) {
		return false
	}
	return true
}

// Merge overlays another predicate, keeping the stricter bound where both
// sides set one. Genre sets are unioned with duplicates removed.
func (f FilterPredicate) Merge(overlay FilterPredicate) FilterPredicate {
	out := f
	out.MinYear = maxInt(f.MinYear, overlay.MinYear)
	if overlay.MaxYear > 0 && (out.MaxYear == 0 || overlay.MaxYear < out.MaxYear) {
		out.MaxYear = overlay.MaxYear
	}
	out.MinRating = maxFloat(f.MinRating, overlay.MinRating)
	if overlay.MaxRuntime > 0 && (out.MaxRuntime == 0 || overlay.MaxRuntime < out.MaxRuntime) {
		out.MaxRuntime = overlay.MaxRuntime
	}
	out.MinRuntime = maxInt(f.MinRuntime, overlay.MinRuntime)
	out.MinVotes = maxInt(f.MinVotes, overlay.MinVotes)
	out.MinPopularity = maxFloat(f.MinPopularity, overlay.MinPopularity)
	if overlay.MaxPopularity > 0 && (out.MaxPopularity == 0 || overlay.MaxPopularity < out.MaxPopularity) {
		out.MaxPopularity = overlay.MaxPopularity
	}
	out.IncludeGenres = unionGenres(f.IncludeGenres, overlay.IncludeGenres)
	out.ExcludeGenres = unionGenres(f.ExcludeGenres, overlay.ExcludeGenres)
	return out
}

func containsAnyGenre(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func unionGenres(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, g := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
