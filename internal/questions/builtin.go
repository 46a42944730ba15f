// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package questions

import "github.com/tomtom215/cinemoment/internal/models"

// Builtin question sets. These are the catalog of last resort: they are
// served whenever the persistent store is empty or unreachable, so the
// questionnaire can never come back empty.

// Question identifiers are stable across domains and flows; only prompts
// vary. The mapper keys its profile and filter tables on these IDs.
const (
	QEmotionalState  = "emotional_state"
	QEnergyLevel     = "energy_level"
	QAttentionLevel  = "attention_level"
	QDiscoveryMode   = "discovery_mode"
	QPersonalContext = "personal_context"
	QPacePreference  = "pace_preference"
	QEraPreference   = "era_preference"
	QMoodBoard       = "mood_board"
)

// subject returns the noun used in prompts for a domain.
func subject(domain models.Domain) string {
	switch domain {
	case models.DomainTVSeries:
		return "series"
	case models.DomainDocumentaries:
		return "documentary"
	default:
		return "movie"
	}
}

// BuiltinQuestions returns the full ordered question set for a domain.
// Flow planning subsets and re-templates this list; it never reorders IDs.
func BuiltinQuestions(domain models.Domain) []models.Question {
	noun := subject(domain)
	return []models.Question{
		{
			ID:      QEmotionalState,
			Ordinal: 1,
			Prompt:  "How is your heart doing right now?",
			Options: []models.Option{
				{
					ID: "heavy", Text: "Carrying something heavy",
					Clause: "emotionally deep and quietly reflective",
					Traits: map[string]float64{"melancholic": 0.9, "emotional": 0.8, "slow_burn": 0.5},
				},
				{
					ID: "settled", Text: "Settled and content",
					Clause: "warm and gently satisfying",
					Traits: map[string]float64{"uplifting": 0.6, "calm": 0.8, "familiar": 0.5},
				},
				{
					ID: "restless", Text: "Restless, looking for a spark",
					Clause: "exciting and full of momentum",
					Traits: map[string]float64{"intense": 0.7, "novel": 0.7, "fast_paced": 0.6},
				},
			},
		},
		{
			ID:      QEnergyLevel,
			Ordinal: 2,
			Prompt:  "How much energy do you have for a " + noun + "?",
			Options: []models.Option{
				{
					ID: "drained", Text: "Running on empty",
					Clause: "easy to watch and comforting",
					Traits: map[string]float64{"calm": 0.9, "simple": 0.7, "light": 0.6},
				},
				{
					ID: "steady", Text: "Steady, could go either way",
					Clause: "engaging without being demanding",
					Traits: map[string]float64{"grounded": 0.6, "emotional": 0.4, "familiar": 0.4},
				},
				{
					ID: "charged", Text: "Fully charged",
					Clause: "gripping and energetic",
					Traits: map[string]float64{"intense": 0.8, "fast_paced": 0.8, "dark": 0.3},
				},
			},
		},
		{
			ID:      QAttentionLevel,
			Ordinal: 3,
			Prompt:  "How much attention can you give it?",
			Options: []models.Option{
				{
					ID: "background", Text: "It'll be on in the background",
					Clause: "light and easy to follow",
					Traits:  map[string]float64{"simple": 0.8, "light": 0.7},
					Filters: models.FilterPredicate{MaxRuntime: 120},
				},
				{
					ID: "casual", Text: "Watching, but casually",
					Clause: "entertaining without homework",
					Traits: map[string]float64{"escapist": 0.6, "simple": 0.4},
				},
				{
					ID: "full_focus", Text: "Full focus, lights off",
					Clause: "layered and worth full attention",
					Traits:  map[string]float64{"complex": 0.9, "cerebral": 0.7, "slow_burn": 0.4},
					Filters: models.FilterPredicate{MinRating: 7.0},
				},
			},
		},
		{
			ID:      QDiscoveryMode,
			Ordinal: 4,
			Prompt:  "Comfort pick or a discovery?",
			Options: []models.Option{
				{
					ID: "reliable", Text: "Something reliably good",
					Clause: "widely loved and dependable",
					Traits:  map[string]float64{"familiar": 0.9, "grounded": 0.5},
					Filters: models.FilterPredicate{MinRating: 6.5, MinVotes: 100},
				},
				{
					ID: "mixed", Text: "Mostly safe, one curveball",
					Clause: "a fresh take on something familiar",
					Traits: map[string]float64{"novel": 0.5, "familiar": 0.5},
				},
				{
					ID: "surprise", Text: "Surprise me completely",
					Clause: "unexpected and off the beaten path",
					Traits:  map[string]float64{"novel": 0.9, "complex": 0.5, "dark": 0.3},
					Filters: models.FilterPredicate{MaxPopularity: 50},
				},
			},
		},
		{
			ID:      QPersonalContext,
			Ordinal: 5,
			Prompt:  "What is tonight really about?",
			Options: []models.Option{
				{
					ID: "escaping", Text: "Escaping the day",
					Clause: "transporting and immersive",
					Traits:  map[string]float64{"escapist": 0.9, "novel": 0.4},
					Filters: models.FilterPredicate{ExcludeGenres: []string{"documentary", "biography"}},
				},
				{
					ID: "processing", Text: "Processing some feelings",
					Clause: "honest and emotionally resonant",
					Traits: map[string]float64{"emotional": 0.9, "melancholic": 0.5, "grounded": 0.6},
				},
				{
					ID: "celebrating", Text: "Celebrating something",
					Clause: "joyful and celebratory",
					Traits: map[string]float64{"uplifting": 0.9, "light": 0.7, "fast_paced": 0.3},
				},
				{
					ID: "connecting", Text: "Sharing it with someone",
					Clause: "crowd-pleasing and conversation-starting",
					Traits: map[string]float64{"uplifting": 0.5, "familiar": 0.6, "emotional": 0.4},
				},
			},
		},
		{
			ID:      QPacePreference,
			Ordinal: 6,
			Prompt:  "What pace suits you tonight?",
			Options: []models.Option{
				{
					ID: "slow_burn", Text: "A slow burn that earns it",
					Clause: "patient and deliberately paced",
					Traits: map[string]float64{"slow_burn": 0.9, "complex": 0.5, "calm": 0.4},
				},
				{
					ID: "balanced", Text: "Balanced, with room to breathe",
					Clause: "well paced from start to finish",
					Traits: map[string]float64{"grounded": 0.5, "familiar": 0.3},
				},
				{
					ID: "relentless", Text: "Relentless forward motion",
					Clause: "propulsive and relentless",
					Traits: map[string]float64{"fast_paced": 0.9, "intense": 0.7},
				},
			},
		},
		{
			ID:      QEraPreference,
			Ordinal: 7,
			Prompt:  "Any era calling to you?",
			Options: []models.Option{
				{
					ID: "classic", Text: "Something with history",
					Clause: "a classic with staying power",
					Traits:  map[string]float64{"familiar": 0.6, "slow_burn": 0.4},
					Filters: models.FilterPredicate{MaxYear: 1999},
				},
				{
					ID: "modern", Text: "Fresh and current",
					Clause: "contemporary in style and sensibility",
					Traits:  map[string]float64{"novel": 0.6, "fast_paced": 0.3},
					Filters: models.FilterPredicate{MinYear: 2010},
				},
				{
					ID: "timeless", Text: "Whenever, if it's good",
					Clause: "timeless regardless of era",
					Traits: map[string]float64{"grounded": 0.4},
				},
			},
		},
		{
			ID:      QMoodBoard,
			Ordinal: 8,
			Prompt:  "Pick the image that feels like tonight.",
			Description: "One picture instead of five questions — choose the " +
				"board that matches the moment.",
			Options: []models.Option{
				{
					ID: "rain_window", Text: "Rain on a window, tea going cold",
					Clause: "cozy, wistful and contemplative",
					Traits: map[string]float64{"melancholic": 0.7, "calm": 0.8, "slow_burn": 0.6},
				},
				{
					ID: "neon_night", Text: "Neon streets after midnight",
					Clause: "stylish, electric and a little dangerous",
					Traits: map[string]float64{"intense": 0.8, "dark": 0.7, "novel": 0.6},
				},
				{
					ID: "golden_field", Text: "Golden light over an open field",
					Clause: "warm, open-hearted and hopeful",
					Traits: map[string]float64{"uplifting": 0.9, "light": 0.7, "grounded": 0.5},
				},
				{
					ID: "storm_sea", Text: "A storm rolling in over the sea",
					Clause: "sweeping, dramatic and elemental",
					Traits: map[string]float64{"intense": 0.7, "emotional": 0.7, "complex": 0.5},
				},
			},
		},
	}
}
