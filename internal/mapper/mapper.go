// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package mapper turns a session's answers and context into the three
// pipeline inputs: retrieval query text, a filter predicate, and the
// emotional profile. Every function here is total: any combination of
// present and absent answers produces a valid result.
package mapper

import (
	"strings"

	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/questions"
)

// Output is the mapper's product for one pipeline run.
type Output struct {
	QueryText string
	Filters   models.FilterPredicate
	Profile   models.EmotionalProfile

	// TraitWeights is the merged option trait bag, used by the
	// deterministic embedding fallback. Weights are clamped to [0,1].
	TraitWeights map[string]float64
}

// Map derives the pipeline inputs from a session snapshot. Layered deltas
// recorded on the session (query suffixes, filter overlay, trait boosts)
// are folded in so refinements and quick adjustments re-run naturally.
func Map(sess *models.Session) Output {
	answers := sess.AnswerMap()

	out := Output{
		Profile:      deriveProfile(answers),
		TraitWeights: make(map[string]float64),
	}

	clauses := make([]string, 0, len(sess.Questions))
	filters := models.FilterPredicate{}

	// Stable order: pinned question ordinals, never map iteration.
	for _, q := range sess.Questions {
		optID, answered := answers[q.ID]
		if !answered {
			continue
		}
		opt, ok := q.OptionByID(optID)
		if !ok {
			continue
		}
		if opt.Clause != "" {
			clauses = append(clauses, opt.Clause)
		}
		for trait, w := range opt.Traits {
			out.TraitWeights[trait] = clamp01(out.TraitWeights[trait] + w)
		}
		filters = filters.Merge(opt.Filters)
	}

	filters = filters.Merge(contextFilters(sess.Context))
	filters = filters.Merge(sess.FilterOverlay)
	out.Filters = filters

	for trait, boost := range sess.TraitBoosts {
		out.TraitWeights[trait] = clamp01(out.TraitWeights[trait] + boost)
	}

	out.QueryText = buildQueryText(sess.Domain, clauses, sess.QuerySuffixes)
	return out
}

// buildQueryText composes the natural-language retrieval sentence from the
// answered option clauses in ordinal order, then appends layered suffixes.
func buildQueryText(domain models.Domain, clauses, suffixes []string) string {
	noun := "movie"
	switch domain {
	case models.DomainTVSeries:
		noun = "series"
	case models.DomainDocumentaries:
		noun = "documentary"
	}

	var b strings.Builder
	b.WriteString("a " + noun + " that feels ")
	if len(clauses) == 0 {
		b.WriteString("right for this moment")
	} else {
		b.WriteString(strings.Join(clauses, ", "))
	}
	for _, suffix := range suffixes {
		b.WriteString(" ")
		b.WriteString(suffix)
	}
	return b.String()
}

// contextFilters applies the moment-context hints.
func contextFilters(ctx models.MomentContext) models.FilterPredicate {
	var f models.FilterPredicate
	if ctx.TimeOfDay == models.TimeLateNight {
		f.MaxRuntime = 150
	}
	return f
}

// deriveProfile computes each axis as a pure function of one answer, with a
// documented default when that answer is absent.
func deriveProfile(answers map[string]string) models.EmotionalProfile {
	profile := models.DefaultProfile()

	// Mood ← emotional_state; default content.
	switch answers[questions.QEmotionalState] {
	case "heavy":
		profile.Mood = models.MoodMelancholic
	case "restless":
		profile.Mood = models.MoodAdventurous
	case "settled":
		profile.Mood = models.MoodContent
	}

	// Energy ← energy_level; default neutral.
	switch answers[questions.QEnergyLevel] {
	case "drained":
		profile.Energy = models.EnergyDrained
	case "charged":
		profile.Energy = models.EnergyEnergized
	case "steady":
		profile.Energy = models.EnergyNeutral
	}

	// Openness ← discovery_mode; default exploring.
	switch answers[questions.QDiscoveryMode] {
	case "reliable":
		profile.Openness = models.OpennessComfortZone
	case "surprise":
		profile.Openness = models.OpennessExperimental
	case "mixed":
		profile.Openness = models.OpennessExploring
	}

	// Focus ← attention_level; default present.
	switch answers[questions.QAttentionLevel] {
	case "background":
		profile.Focus = models.FocusScattered
	case "full_focus":
		profile.Focus = models.FocusImmersed
	case "casual":
		profile.Focus = models.FocusPresent
	}

	// The visual flow answers only the mood board; let it shade mood and
	// openness so a single answer still yields a distinctive profile.
	switch answers[questions.QMoodBoard] {
	case "rain_window":
		profile.Mood = models.MoodMelancholic
	case "neon_night":
		profile.Mood = models.MoodAdventurous
		profile.Openness = models.OpennessExperimental
	case "golden_field":
		profile.Mood = models.MoodContent
	case "storm_sea":
		profile.Mood = models.MoodAdventurous
	}

	return profile
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
