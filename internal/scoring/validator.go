// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package scoring validates a finished recommendation list: how well it
// matches the emotional profile, how varied it is, and whether the surprises
// are worth their slots. It also renders the moment summary shown to users.
package scoring

import (
	"math"

	"github.com/tomtom215/cinemoment/internal/models"
)

// Scores are the validator's three scalars plus the overall blend.
type Scores struct {
	EmotionalMatch  float64 `json:"emotionalMatch"`
	Diversity       float64 `json:"diversity"`
	SurpriseQuality float64 `json:"surpriseQuality"`
	Overall         int     `json:"overall"`
	Degraded        bool    `json:"degraded"`
}

// RadarAxis is one spoke of the moment radar chart.
type RadarAxis struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MomentSummary is the human-facing description of the detected moment.
type MomentSummary struct {
	Text       string      `json:"text"`
	Emoji      string      `json:"emoji"`
	Confidence int         `json:"confidence"`
	Radar      []RadarAxis `json:"radar"`
}

// Validator scores recommendation lists. Stateless; safe for concurrent use.
type Validator struct{}

// NewValidator creates a validator.
func NewValidator() *Validator { return &Validator{} }

// Score computes the three component scores and the overall [0,100] blend:
// 40% emotional match, 30% diversity, 30% surprise quality. An empty list
// scores zero across the board.
func (v *Validator) Score(items []models.RecommendationItem, profile models.EmotionalProfile) Scores {
	if len(items) == 0 {
		return Scores{Degraded: true}
	}

	s := Scores{
		EmotionalMatch:  emotionalMatch(items, profile),
		Diversity:       diversity(items),
		SurpriseQuality: surpriseQuality(items),
	}
	overall := 0.4*s.EmotionalMatch + 0.3*s.Diversity + 0.3*s.SurpriseQuality
	s.Overall = int(math.Round(clamp01(overall) * 100))
	return s
}

// itemTraits are the coarse per-item axes derived from genres and quality:
// intensity, positivity, complexity, each in [0,1].
type itemTraits struct {
	intensity  float64
	positivity float64
	complexity float64
}

// genreTraits is the fixed genre → coarse-trait table. Unknown genres fall
// back to the neutral middle.
var genreTraits = map[string]itemTraits{
	"drama":           {0.5, 0.4, 0.7},
	"comedy":          {0.4, 0.9, 0.3},
	"thriller":        {0.8, 0.3, 0.6},
	"horror":          {0.9, 0.2, 0.5},
	"action":          {0.8, 0.6, 0.4},
	"romance":         {0.4, 0.7, 0.4},
	"science fiction": {0.6, 0.5, 0.8},
	"fantasy":         {0.5, 0.6, 0.6},
	"animation":       {0.4, 0.8, 0.4},
	"documentary":     {0.3, 0.5, 0.7},
	"crime":           {0.7, 0.3, 0.6},
	"mystery":         {0.6, 0.4, 0.8},
	"family":          {0.2, 0.9, 0.2},
	"history":         {0.4, 0.4, 0.7},
	"western":         {0.6, 0.4, 0.5},
	"music":           {0.4, 0.8, 0.4},
	"adventure":       {0.6, 0.7, 0.4},
	"war":             {0.8, 0.2, 0.7},
	"biography":       {0.4, 0.5, 0.6},
}

func traitsOf(item models.RecommendationItem) itemTraits {
	if len(item.Genres) == 0 {
		return itemTraits{0.5, 0.5, 0.5}
	}
	var sum itemTraits
	for _, g := range item.Genres {
		t, ok := genreTraits[g]
		if !ok {
			t = itemTraits{0.5, 0.5, 0.5}
		}
		sum.intensity += t.intensity
		sum.positivity += t.positivity
		sum.complexity += t.complexity
	}
	n := float64(len(item.Genres))
	out := itemTraits{sum.intensity / n, sum.positivity / n, sum.complexity / n}

	// Higher quality bands tend to carry more substance.
	if item.Rating >= 8.0 {
		out.complexity = clamp01(out.complexity + 0.1)
	}
	return out
}

// profileTargets maps the emotional profile onto the same three axes.
func profileTargets(p models.EmotionalProfile) itemTraits {
	t := itemTraits{0.5, 0.5, 0.5}

	switch p.Energy {
	case models.EnergyDrained:
		t.intensity = 0.3
	case models.EnergyEnergized:
		t.intensity = 0.8
	}
	switch p.Mood {
	case models.MoodMelancholic:
		t.positivity = 0.35
	case models.MoodContent:
		t.positivity = 0.65
	case models.MoodAdventurous:
		t.positivity = 0.6
	}
	switch p.Focus {
	case models.FocusScattered:
		t.complexity = 0.3
	case models.FocusImmersed:
		t.complexity = 0.8
	}
	return t
}

// emotionalMatch averages per-item closeness to the profile targets.
func emotionalMatch(items []models.RecommendationItem, profile models.EmotionalProfile) float64 {
	target := profileTargets(profile)

	var total float64
	for _, item := range items {
		t := traitsOf(item)
		dist := (math.Abs(t.intensity-target.intensity) +
			math.Abs(t.positivity-target.positivity) +
			math.Abs(t.complexity-target.complexity)) / 3
		total += 1 - dist
	}
	return clamp01(total / float64(len(items)))
}

// diversity blends five variety signals, each normalized against the list
// length so short lists are not punished.
func diversity(items []models.RecommendationItem) float64 {
	n := float64(len(items))

	genres := make(map[string]bool)
	decades := make(map[int]bool)
	styles := make(map[string]bool)
	bands := make(map[int]bool)
	surprises := 0

	for _, item := range items {
		for _, g := range item.Genres {
			genres[g] = true
		}
		decades[item.Year/10] = true
		styles[styleOf(item)] = true
		bands[ratingBand(item.Rating)] = true
		if item.IsSurprise {
			surprises++
		}
	}

	genreScore := math.Min(float64(len(genres))/n, 1)
	decadeScore := math.Min(float64(len(decades))/math.Min(n, 4), 1)
	styleScore := math.Min(float64(len(styles))/math.Min(n, 4), 1)
	bandScore := math.Min(float64(len(bands))/math.Min(n, 4), 1)
	surpriseRatio := math.Min(float64(surprises)/n/0.4, 1)

	return clamp01(0.3*genreScore + 0.2*decadeScore + 0.2*styleScore + 0.2*bandScore + 0.1*surpriseRatio)
}

// styleOf buckets an item into a coarse style from its dominant traits.
func styleOf(item models.RecommendationItem) string {
	t := traitsOf(item)
	switch {
	case t.intensity >= 0.65:
		return "thrilling"
	case t.positivity >= 0.65:
		return "light"
	case t.complexity >= 0.65:
		return "thoughtful"
	default:
		return "grounded"
	}
}

func ratingBand(rating float64) int {
	switch {
	case rating >= 8:
		return 3
	case rating >= 7:
		return 2
	case rating >= 6:
		return 1
	default:
		return 0
	}
}

// kindQuality weighs how much a surprise kind is worth at full confidence.
var kindQuality = map[models.SurpriseKind]float64{
	models.SurpriseHiddenGem:         1.0,
	models.SurpriseAdjacentDiscovery: 0.9,
	models.SurpriseTimeCapsule:       0.85,
	models.SurpriseGenreBending:      0.85,
	models.SurpriseForeign:           0.8,
	models.SurpriseWildcard:          0.7,
}

// surpriseQuality averages per-surprise quality. A list with no surprises
// gets a neutral 0.5 so the blend does not punish safe strategies.
func surpriseQuality(items []models.RecommendationItem) float64 {
	var total float64
	count := 0
	for _, item := range items {
		if !item.IsSurprise {
			continue
		}
		weight, ok := kindQuality[item.SurpriseKind]
		if !ok {
			weight = 0.7
		}
		total += (item.SurpriseConfidence / 100) * weight
		count++
	}
	if count == 0 {
		return 0.5
	}
	return clamp01(total / float64(count))
}

// Summary renders the moment description: text, emoji, confidence and the
// radar payload. Confidence reuses the overall score.
func (v *Validator) Summary(profile models.EmotionalProfile, scores Scores) MomentSummary {
	return MomentSummary{
		Text:       summaryText(profile),
		Emoji:      summaryEmoji(profile),
		Confidence: scores.Overall,
		Radar:      radar(profile),
	}
}

func summaryText(p models.EmotionalProfile) string {
	var mood string
	switch p.Mood {
	case models.MoodMelancholic:
		mood = "A reflective, wrapped-in-a-blanket kind of moment"
	case models.MoodAdventurous:
		mood = "A restless moment looking for somewhere new to go"
	default:
		mood = "A settled, comfortable moment"
	}

	var energy string
	switch p.Energy {
	case models.EnergyDrained:
		energy = "with not much left in the tank"
	case models.EnergyEnergized:
		energy = "with energy to spare"
	default:
		energy = "with a steady pulse"
	}

	var openness string
	switch p.Openness {
	case models.OpennessExperimental:
		openness = "ready for something genuinely unexpected."
	case models.OpennessComfortZone:
		openness = "best met with something familiar."
	default:
		openness = "open to a little discovery."
	}

	return mood + ", " + energy + ", " + openness
}

func summaryEmoji(p models.EmotionalProfile) string {
	switch {
	case p.Mood == models.MoodMelancholic:
		return "🌙"
	case p.Mood == models.MoodAdventurous && p.Energy == models.EnergyEnergized:
		return "🔥"
	case p.Mood == models.MoodAdventurous:
		return "🧭"
	case p.Energy == models.EnergyDrained:
		return "🛋️"
	default:
		return "🍿"
	}
}

// radar maps the profile onto five [0,1] axes for the chart payload.
func radar(p models.EmotionalProfile) []RadarAxis {
	energy := 0.5
	switch p.Energy {
	case models.EnergyDrained:
		energy = 0.2
	case models.EnergyEnergized:
		energy = 0.9
	}

	positivity := 0.55
	switch p.Mood {
	case models.MoodMelancholic:
		positivity = 0.3
	case models.MoodAdventurous:
		positivity = 0.7
	}

	curiosity := 0.55
	switch p.Openness {
	case models.OpennessComfortZone:
		curiosity = 0.25
	case models.OpennessExperimental:
		curiosity = 0.9
	}

	focus := 0.55
	switch p.Focus {
	case models.FocusScattered:
		focus = 0.25
	case models.FocusImmersed:
		focus = 0.9
	}

	intensity := clamp01((energy + curiosity) / 2)

	return []RadarAxis{
		{Name: "energy", Value: energy},
		{Name: "positivity", Value: positivity},
		{Name: "curiosity", Value: curiosity},
		{Name: "focus", Value: focus},
		{Name: "intensity", Value: intensity},
	}
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
