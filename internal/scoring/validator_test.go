// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package scoring

import (
	"testing"

	"github.com/tomtom215/cinemoment/internal/models"
)

func item(id string, year int, rating float64, genres ...string) models.RecommendationItem {
	return models.RecommendationItem{Candidate: models.Candidate{
		ID: id, Year: year, Rating: rating, Genres: genres,
	}}
}

func TestScoreEmptyListIsZeroAndDegraded(t *testing.T) {
	v := NewValidator()
	s := v.Score(nil, models.DefaultProfile())
	if s.Overall != 0 {
		t.Errorf("overall = %d, want 0", s.Overall)
	}
	if !s.Degraded {
		t.Error("empty list must be degraded")
	}
}

func TestScoreRange(t *testing.T) {
	v := NewValidator()

	profiles := []models.EmotionalProfile{
		models.DefaultProfile(),
		{Energy: models.EnergyDrained, Mood: models.MoodMelancholic, Openness: models.OpennessComfortZone, Focus: models.FocusScattered},
		{Energy: models.EnergyEnergized, Mood: models.MoodAdventurous, Openness: models.OpennessExperimental, Focus: models.FocusImmersed},
	}
	items := []models.RecommendationItem{
		item("a", 1994, 8.7, "drama", "crime"),
		item("b", 2019, 8.5, "comedy", "thriller"),
		item("c", 1957, 8.5, "drama"),
		item("d", 2016, 8.4, "animation", "romance"),
		item("e", 2008, 8.5, "action", "crime"),
	}

	for _, p := range profiles {
		s := v.Score(items, p)
		if s.Overall < 0 || s.Overall > 100 {
			t.Errorf("overall = %d out of range", s.Overall)
		}
		for _, component := range []float64{s.EmotionalMatch, s.Diversity, s.SurpriseQuality} {
			if component < 0 || component > 1 {
				t.Errorf("component %f out of [0,1]", component)
			}
		}
	}
}

func TestEmotionalMatchPrefersAlignedItems(t *testing.T) {
	drained := models.EmotionalProfile{
		Energy: models.EnergyDrained, Mood: models.MoodContent,
		Openness: models.OpennessComfortZone, Focus: models.FocusScattered,
	}

	gentle := []models.RecommendationItem{
		item("a", 2010, 7.0, "family", "comedy"),
		item("b", 2015, 7.2, "animation"),
	}
	harsh := []models.RecommendationItem{
		item("c", 2010, 7.0, "horror", "war"),
		item("d", 2015, 7.2, "thriller", "crime"),
	}

	if g, h := emotionalMatch(gentle, drained), emotionalMatch(harsh, drained); g <= h {
		t.Errorf("gentle list (%f) should out-score harsh list (%f) for a drained profile", g, h)
	}
}

func TestDiversityMonotonic(t *testing.T) {
	uniform := []models.RecommendationItem{
		item("a", 2018, 7.1, "drama"),
		item("b", 2019, 7.2, "drama"),
		item("c", 2017, 7.0, "drama"),
	}
	varied := []models.RecommendationItem{
		item("a", 1978, 8.5, "western"),
		item("b", 2019, 6.2, "comedy", "romance"),
		item("c", 1995, 7.4, "science fiction", "mystery"),
	}

	if u, v := diversity(uniform), diversity(varied); v <= u {
		t.Errorf("varied list (%f) should out-score uniform list (%f)", v, u)
	}
}

func TestSurpriseQuality(t *testing.T) {
	gem := item("a", 2001, 8.2, "drama")
	gem.IsSurprise = true
	gem.SurpriseKind = models.SurpriseHiddenGem
	gem.SurpriseConfidence = 90

	wild := item("b", 2010, 6.5, "comedy")
	wild.IsSurprise = true
	wild.SurpriseKind = models.SurpriseWildcard
	wild.SurpriseConfidence = 90

	plain := item("c", 2015, 7.0, "drama")

	if q := surpriseQuality([]models.RecommendationItem{plain}); q != 0.5 {
		t.Errorf("no surprises should score neutral 0.5, got %f", q)
	}
	gemQ := surpriseQuality([]models.RecommendationItem{gem, plain})
	wildQ := surpriseQuality([]models.RecommendationItem{wild, plain})
	if gemQ <= wildQ {
		t.Errorf("hidden gem (%f) should out-score wildcard (%f) at equal confidence", gemQ, wildQ)
	}
}

func TestSummaryShape(t *testing.T) {
	v := NewValidator()
	profile := models.EmotionalProfile{
		Energy: models.EnergyDrained, Mood: models.MoodMelancholic,
		Openness: models.OpennessExploring, Focus: models.FocusPresent,
	}
	scores := Scores{Overall: 72}

	sum := v.Summary(profile, scores)
	if sum.Text == "" {
		t.Error("summary text empty")
	}
	if sum.Emoji == "" {
		t.Error("summary emoji empty")
	}
	if sum.Confidence != 72 {
		t.Errorf("confidence = %d, want 72", sum.Confidence)
	}
	if len(sum.Radar) != 5 {
		t.Fatalf("radar has %d axes, want 5", len(sum.Radar))
	}
	for _, axis := range sum.Radar {
		if axis.Value < 0 || axis.Value > 1 {
			t.Errorf("axis %s = %f out of [0,1]", axis.Name, axis.Value)
		}
	}
}

func TestSummaryVariesByProfile(t *testing.T) {
	v := NewValidator()
	a := v.Summary(models.EmotionalProfile{Mood: models.MoodMelancholic, Energy: models.EnergyDrained}, Scores{})
	b := v.Summary(models.EmotionalProfile{Mood: models.MoodAdventurous, Energy: models.EnergyEnergized}, Scores{})
	if a.Text == b.Text {
		t.Error("different profiles should yield different summary text")
	}
	if a.Emoji == b.Emoji {
		t.Error("different profiles should yield different emoji")
	}
}
