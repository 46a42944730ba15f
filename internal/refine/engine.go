// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package refine turns per-item reactions into a deterministic pipeline
// delta: a refinement strategy with trait boosts, a filter overlay, a query
// suffix and an exclusion list. Applying the delta and re-running the
// pipeline is the caller's job.
package refine

import (
	"sort"
	"strings"

	"github.com/tomtom215/cinemoment/internal/models"
)

// Strategy is the closed set of refinement strategies.
type Strategy string

const (
	StrategyTooIntense       Strategy = "tooIntense"
	StrategyNotIntenseEnough Strategy = "notIntenseEnough"
	StrategyWrongEnergy      Strategy = "wrongEnergy"
	StrategyGenreMismatch    Strategy = "genreMismatch"
	StrategyHiddenDesire     Strategy = "hiddenDesire"
	StrategyNeedVariety      Strategy = "needVariety"
)

// Action is the optional named action a client can send instead of letting
// pattern detection decide.
type Action string

const (
	ActionMoreLikeThis Action = "more_like_this"
	ActionTryDifferent Action = "try_different"
	ActionTooIntense   Action = "too_intense"
	ActionTooLight     Action = "too_light"
)

// Delta is the deterministic adjustment a strategy applies to the session.
type Delta struct {
	TraitBoosts    map[string]float64
	FilterOverlay  models.FilterPredicate
	QuerySuffix    string
	ExcludeItemIDs []string
}

// Result is one classified refinement.
type Result struct {
	Strategy    Strategy
	Confidence  float64
	Explanation string
	Delta       Delta
}

// intenseGenres are the genres treated as high-intensity by pattern
// detection. Kept in sync with the scoring trait table.
var intenseGenres = map[string]bool{
	"thriller": true, "horror": true, "action": true,
	"crime": true, "war": true,
}

var lightGenres = map[string]bool{
	"comedy": true, "family": true, "romance": true,
	"animation": true, "music": true,
}

// theme vocabulary recognized in tags and free text. Closed set; anything
// else is ignored.
var themeWords = map[string]Strategy{
	"intense":     StrategyTooIntense,
	"scary":       StrategyTooIntense,
	"heavy":       StrategyTooIntense,
	"violent":     StrategyTooIntense,
	"boring":      StrategyWrongEnergy,
	"slow":        StrategyWrongEnergy,
	"dull":        StrategyWrongEnergy,
	"predictable": StrategyNeedVariety,
	"samey":       StrategyNeedVariety,
	"shallow":     StrategyNotIntenseEnough,
	"bland":       StrategyNotIntenseEnough,
}

// explanations is the fixed human-readable table, one entry per strategy.
var explanations = map[Strategy]string{
	StrategyTooIntense:       "That batch ran too hot. Dialing the intensity down and looking for something easier to sit with.",
	StrategyNotIntenseEnough: "Too tame, understood. Turning up the edge and momentum this time.",
	StrategyWrongEnergy:      "The pacing missed your energy. Shifting toward a different rhythm.",
	StrategyGenreMismatch:    "Those genres were not landing. Steering away from them and trying a different direction.",
	StrategyHiddenDesire:     "Something in what you liked points somewhere specific. Leaning further into it.",
	StrategyNeedVariety:      "Too much of the same shape. Widening the net for more variety.",
}

// Engine classifies feedback into refinement strategies.
type Engine struct{}

// NewEngine creates a refinement engine.
func NewEngine() *Engine { return &Engine{} }

// Classify resolves the strategy for a feedback batch. Precedence: the named
// action wins when present, then theme/genre pattern triggers, then the
// like/dislike balance. The returned delta always excludes every rated item
// so a refined list never re-shows what the user just judged.
func (e *Engine) Classify(sess *models.Session, feedback []models.ItemFeedback, action Action) Result {
	patterns := detectPatterns(sess, feedback)

	strategy, fromAction := actionStrategy(action)
	if !fromAction {
		strategy = patternStrategy(patterns)
	}

	result := Result{
		Strategy:    strategy,
		Confidence:  confidence(patterns, fromAction),
		Explanation: explanations[strategy],
		Delta:       buildDelta(strategy, patterns),
	}
	return result
}

// patterns aggregates what the feedback batch says.
type patterns struct {
	likes, dislikes int
	likedGenres     map[string]int
	dislikedGenres  map[string]int
	themeVotes      map[Strategy]int
	ratedIDs        []string
}

func detectPatterns(sess *models.Session, feedback []models.ItemFeedback) patterns {
	p := patterns{
		likedGenres:    make(map[string]int),
		dislikedGenres: make(map[string]int),
		themeVotes:     make(map[Strategy]int),
	}

	byID := make(map[string]models.RecommendationItem, len(sess.LastRecommendations))
	for _, item := range sess.LastRecommendations {
		byID[item.ID] = item
	}

	for _, fb := range feedback {
		p.ratedIDs = append(p.ratedIDs, fb.ItemID)

		item, known := byID[fb.ItemID]
		switch {
		case fb.Reaction.Positive():
			p.likes++
			if known {
				for _, g := range item.Genres {
					p.likedGenres[g]++
				}
			}
		case fb.Reaction.Negative():
			p.dislikes++
			if known {
				for _, g := range item.Genres {
					p.dislikedGenres[g]++
				}
			}
		}

		for _, tag := range fb.Tags {
			if s, ok := themeWords[strings.ToLower(tag)]; ok {
				p.themeVotes[s]++
			}
		}
		for _, word := range strings.Fields(strings.ToLower(fb.FreeText)) {
			if s, ok := themeWords[strings.Trim(word, ".,!?")]; ok {
				p.themeVotes[s]++
			}
		}
	}
	return p
}

func actionStrategy(action Action) (Strategy, bool) {
	switch action {
	case ActionTooIntense:
		return StrategyTooIntense, true
	case ActionTooLight:
		return StrategyNotIntenseEnough, true
	case ActionMoreLikeThis:
		return StrategyHiddenDesire, true
	case ActionTryDifferent:
		return StrategyNeedVariety, true
	default:
		return "", false
	}
}

func patternStrategy(p patterns) Strategy {
	// Theme votes are the strongest signal after a named action.
	if s, votes := topTheme(p.themeVotes); votes > 0 {
		return s
	}

	// Genre-level triggers.
	intenseDislikes := genreCount(p.dislikedGenres, intenseGenres)
	lightDislikes := genreCount(p.dislikedGenres, lightGenres)
	switch {
	case p.dislikes > 0 && intenseDislikes*2 >= p.dislikes && intenseDislikes > lightDislikes:
		return StrategyTooIntense
	case p.dislikes > 0 && lightDislikes*2 >= p.dislikes && lightDislikes > intenseDislikes:
		return StrategyNotIntenseEnough
	case dominantGenre(p.dislikedGenres) != "":
		return StrategyGenreMismatch
	}

	// Default by balance.
	switch {
	case p.likes > p.dislikes:
		return StrategyHiddenDesire
	case p.dislikes > p.likes:
		return StrategyGenreMismatch
	default:
		return StrategyNeedVariety
	}
}

// topTheme returns the most voted theme; ties break alphabetically by
// strategy name so classification stays deterministic.
func topTheme(votes map[Strategy]int) (Strategy, int) {
	var best Strategy
	bestVotes := 0
	for s, v := range votes {
		if v > bestVotes || (v == bestVotes && v > 0 && s < best) {
			best, bestVotes = s, v
		}
	}
	return best, bestVotes
}

func genreCount(counts map[string]int, set map[string]bool) int {
	total := 0
	for g, n := range counts {
		if set[g] {
			total += n
		}
	}
	return total
}

// dominantGenre returns a genre disliked at least twice, preferring the most
// disliked and breaking ties alphabetically.
func dominantGenre(counts map[string]int) string {
	best, bestN := "", 1
	for g, n := range counts {
		if n > bestN || (n == bestN && n > 1 && g < best) {
			best, bestN = g, n
		}
	}
	if bestN < 2 {
		return ""
	}
	return best
}

// confidence grows with signal volume; a named action is the clearest
// signal of all.
func confidence(p patterns, fromAction bool) float64 {
	c := 0.5
	rated := p.likes + p.dislikes
	if rated > 3 {
		rated = 3
	}
	c += 0.1 * float64(rated)
	if fromAction {
		c += 0.15
	}
	if len(p.themeVotes) > 0 {
		c += 0.05
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// buildDelta produces the strategy's deterministic adjustment.
func buildDelta(strategy Strategy, p patterns) Delta {
	d := Delta{ExcludeItemIDs: append([]string(nil), p.ratedIDs...)}

	switch strategy {
	case StrategyTooIntense:
		d.TraitBoosts = map[string]float64{"calm": 0.3, "light": 0.2, "intense": -0.4}
		d.QuerySuffix = "but gentler and easier to sit with"
		d.FilterOverlay = models.FilterPredicate{ExcludeGenres: []string{"horror"}}
	case StrategyNotIntenseEnough:
		d.TraitBoosts = map[string]float64{"intense": 0.3, "fast_paced": 0.2, "calm": -0.3}
		d.QuerySuffix = "but with more edge and momentum"
	case StrategyWrongEnergy:
		d.TraitBoosts = map[string]float64{"fast_paced": 0.2, "uplifting": 0.2, "slow_burn": -0.3}
		d.QuerySuffix = "with a completely different energy"
	case StrategyGenreMismatch:
		d.TraitBoosts = map[string]float64{"novel": 0.2}
		d.QuerySuffix = "but in a different direction"
		d.FilterOverlay = models.FilterPredicate{ExcludeGenres: topGenres(p.dislikedGenres, 2)}
	case StrategyHiddenDesire:
		d.TraitBoosts = map[string]float64{"familiar": 0.2}
		d.QuerySuffix = "leaning further into what worked"
		if liked := topGenres(p.likedGenres, 2); len(liked) > 0 {
			d.FilterOverlay = models.FilterPredicate{IncludeGenres: liked}
		}
	case StrategyNeedVariety:
		d.TraitBoosts = map[string]float64{"novel": 0.3, "familiar": -0.2}
		d.QuerySuffix = "but more varied and eclectic"
	}
	return d
}

// topGenres returns up to n genres by count desc, name asc. Deterministic.
func topGenres(counts map[string]int, n int) []string {
	type entry struct {
		genre string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for g, c := range counts {
		entries = append(entries, entry{g, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].genre < entries[j].genre
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.genre
	}
	return out
}
