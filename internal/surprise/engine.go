// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package surprise picks a discovery strategy from the emotional profile and
// mixes surprise slots into the expected candidate list at fixed ranks.
package surprise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/cinemoment/internal/models"
)

// Strategy is the closed set of surprise postures.
type Strategy string

const (
	StrategySafe        Strategy = "safe"
	StrategyAdventurous Strategy = "adventurous"
	StrategyMoodShifter Strategy = "mood_shifter"
)

// SerendipityFactor is the probability that a slot picks a uniformly random
// matching candidate instead of the best one. Small on purpose: surprises
// should feel curated, not random.
const SerendipityFactor = 0.10

// surpriseRanks are the 1-based positions surprises claim first.
var surpriseRanks = []int{3, 6, 8}

// Input is one mixing request. Seed makes a request reproducible; callers
// derive it per request.
type Input struct {
	Items             []models.RecommendationItem
	Profile           models.EmotionalProfile
	Context           models.MomentContext
	DiscoverySurprise bool
	Exclude           map[string]bool
	MaxList           int
	Seed              int64
}

// Output is the final ranked list plus what the engine decided.
type Output struct {
	Items    []models.RecommendationItem
	Strategy Strategy
	Count    int
}

// Engine mixes surprises into recommendation lists.
type Engine struct{}

// NewEngine creates a surprise engine.
func NewEngine() *Engine { return &Engine{} }

// Mix selects a strategy, chooses surprise slots from the deeper candidate
// pool, and interleaves them with the expected candidates. The result has
// 1-based ranks, no duplicate IDs, and length min(MaxList, pool size).
func (e *Engine) Mix(in Input) Output {
	rng := rand.New(rand.NewSource(in.Seed))

	pool := make([]models.RecommendationItem, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if in.Exclude[item.ID] || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		pool = append(pool, item)
	}

	maxList := in.MaxList
	if maxList <= 0 {
		maxList = 10
	}
	if maxList > len(pool) {
		maxList = len(pool)
	}

	strategy := selectStrategy(in.Profile, in.Context, rng)

	count := surpriseCount(in.Profile, in.DiscoverySurprise, maxList)
	picks := e.pickSurprises(pool, maxList, strategy, count, rng)

	return Output{
		Items:    mix(pool, picks, maxList),
		Strategy: strategy,
		Count:    len(picks),
	}
}

// selectStrategy applies the precedence rules over profile and context.
func selectStrategy(profile models.EmotionalProfile, ctx models.MomentContext, rng *rand.Rand) Strategy {
	switch {
	case profile.Openness == models.OpennessExperimental:
		return StrategyAdventurous
	case profile.Energy == models.EnergyDrained:
		return StrategySafe
	case ctx.TimeOfDay == models.TimeLateNight:
		if rng.Intn(2) == 0 {
			return StrategyMoodShifter
		}
		return StrategyAdventurous
	case ctx.DayClass == models.DayWeekend:
		return StrategyAdventurous
	default:
		return StrategySafe
	}
}

// surpriseCount computes the slot budget: base 2, +2 when the user asked to
// be surprised, +1 when exploring, capped at 40% of the list.
func surpriseCount(profile models.EmotionalProfile, discoverySurprise bool, listLen int) int {
	count := 2
	if discoverySurprise {
		count += 2
	}
	if profile.Openness == models.OpennessExploring {
		count++
	}
	if limit := int(math.Floor(0.4 * float64(listLen))); count > limit {
		count = limit
	}
	if count < 0 {
		count = 0
	}
	return count
}

// slotKind resolves the surprise kind for a slot index given the strategy.
// The first two slots are fixed by strategy family; later slots draw
// uniformly from the kinds not yet used.
func slotKind(slot int, strategy Strategy, used map[models.SurpriseKind]bool, rng *rand.Rand) models.SurpriseKind {
	adventurous := strategy == StrategyAdventurous
	switch slot {
	case 0:
		if adventurous {
			return models.SurpriseAdjacentDiscovery
		}
		return models.SurpriseHiddenGem
	case 1:
		if adventurous {
			return models.SurpriseWildcard
		}
		return models.SurpriseAdjacentDiscovery
	}

	remaining := make([]models.SurpriseKind, 0, 6)
	for _, kind := range models.SurpriseKinds() {
		if !used[kind] {
			remaining = append(remaining, kind)
		}
	}
	if len(remaining) == 0 {
		return models.SurpriseWildcard
	}
	return remaining[rng.Intn(len(remaining))]
}

// pickSurprises selects count items from the pool beyond the visible head,
// one per slot, matched to the slot's kind. A kind with no matching
// candidate falls back to the best unused deep candidate.
func (e *Engine) pickSurprises(pool []models.RecommendationItem, maxList int, strategy Strategy, count int, rng *rand.Rand) []models.RecommendationItem {
	// Prefer candidates the user would not have seen; if the pool is
	// shallow, reach past the first few expected positions instead.
	deepStart := maxList
	if deepStart >= len(pool) {
		deepStart = min(3, len(pool))
	}

	headGenres := make(map[string]bool)
	for i := 0; i < deepStart && i < 3; i++ {
		for _, g := range pool[i].Genres {
			headGenres[g] = true
		}
	}

	taken := make(map[string]bool, count)
	usedKinds := make(map[models.SurpriseKind]bool, count)
	picks := make([]models.RecommendationItem, 0, count)

	for slot := 0; slot < count; slot++ {
		kind := slotKind(slot, strategy, usedKinds, rng)
		usedKinds[kind] = true

		matching := make([]int, 0, len(pool)-deepStart)
		fallback := make([]int, 0, len(pool)-deepStart)
		for i := deepStart; i < len(pool); i++ {
			if taken[pool[i].ID] {
				continue
			}
			fallback = append(fallback, i)
			if kindMatches(kind, pool[i], headGenres) {
				matching = append(matching, i)
			}
		}
		if len(matching) == 0 {
			matching = fallback
		}
		if len(matching) == 0 {
			break
		}

		// Usually the best match; occasionally a uniform draw to keep the
		// slot from being fully predictable.
		idx := matching[0]
		if rng.Float64() < SerendipityFactor {
			idx = matching[rng.Intn(len(matching))]
		}

		item := pool[idx]
		item.IsSurprise = true
		item.SurpriseKind = kind
		item.SurpriseReason = reasonFor(kind, item)
		item.SurpriseConfidence = confidenceFor(item)

		taken[item.ID] = true
		picks = append(picks, item)
	}
	return picks
}

// kindMatches decides whether a candidate can fill a slot of the given kind.
func kindMatches(kind models.SurpriseKind, item models.RecommendationItem, headGenres map[string]bool) bool {
	switch kind {
	case models.SurpriseHiddenGem:
		return item.Rating >= 7.5 && item.Popularity < 40
	case models.SurpriseAdjacentDiscovery:
		for _, g := range item.Genres {
			if headGenres[g] {
				return true
			}
		}
		return false
	case models.SurpriseTimeCapsule:
		return item.Year > 0 && item.Year < 2000
	case models.SurpriseForeign:
		return item.Popularity < 35 && item.Rating >= 7.5
	case models.SurpriseGenreBending:
		return len(item.Genres) >= 3
	default: // wildcard takes anything
		return true
	}
}

// reasonFor renders the short human string attached to a surprise slot.
func reasonFor(kind models.SurpriseKind, item models.RecommendationItem) string {
	switch kind {
	case models.SurpriseHiddenGem:
		return fmt.Sprintf("A quietly brilliant pick most people missed — rated %.1f by the few who found it", item.Rating)
	case models.SurpriseAdjacentDiscovery:
		return "One step sideways from what you asked for, close enough to trust"
	case models.SurpriseTimeCapsule:
		return fmt.Sprintf("A trip back to %d that holds up tonight", item.Year)
	case models.SurpriseForeign:
		return "A detour beyond the usual borders, worth the subtitles"
	case models.SurpriseGenreBending:
		return "Refuses to stay in one genre, in the best way"
	default:
		return "A wild card thrown in to see what happens"
	}
}

// confidenceFor derives a deterministic confidence in [0,100] from the
// item's quality and how similar retrieval thought it was.
func confidenceFor(item models.RecommendationItem) float64 {
	conf := item.Rating*8 + item.Similarity*20
	if conf > 100 {
		conf = 100
	}
	if conf < 0 {
		conf = 0
	}
	return math.Round(conf)
}

// mix interleaves surprises at the fixed ranks with expected candidates,
// assigns 1-based ranks, and trims to maxList.
func mix(pool, picks []models.RecommendationItem, maxList int) []models.RecommendationItem {
	isPick := make(map[string]bool, len(picks))
	for _, p := range picks {
		isPick[p.ID] = true
	}

	expected := make([]models.RecommendationItem, 0, len(pool))
	for _, item := range pool {
		if !isPick[item.ID] {
			expected = append(expected, item)
		}
	}

	// Fixed surprise positions first; extras claim ranks from the tail.
	slots := make(map[int]bool, len(picks))
	assigned := 0
	for _, r := range surpriseRanks {
		if assigned >= len(picks) {
			break
		}
		if r <= maxList {
			slots[r] = true
			assigned++
		}
	}
	for r := maxList; r >= 1 && assigned < len(picks); r-- {
		if !slots[r] {
			slots[r] = true
			assigned++
		}
	}

	out := make([]models.RecommendationItem, 0, maxList)
	pickIdx, expIdx := 0, 0
	for rank := 1; rank <= maxList; rank++ {
		var item models.RecommendationItem
		switch {
		case slots[rank] && pickIdx < len(picks):
			item = picks[pickIdx]
			pickIdx++
		case expIdx < len(expected):
			item = expected[expIdx]
			expIdx++
		case pickIdx < len(picks):
			item = picks[pickIdx]
			pickIdx++
		default:
			return out
		}
		item.Rank = rank
		out = append(out, item)
	}
	return out
}
