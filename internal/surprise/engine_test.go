// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package surprise

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/tomtom215/cinemoment/internal/models"
)

func itemPool(n int) []models.RecommendationItem {
	out := make([]models.RecommendationItem, n)
	for i := range out {
		out[i] = models.RecommendationItem{
			Candidate: models.Candidate{
				ID:         fmt.Sprintf("mv-%d", i),
				Title:      fmt.Sprintf("Title %d", i),
				Year:       1980 + i*2,
				Genres:     []string{"drama"},
				Rating:     8.0 - float64(i)*0.05,
				Popularity: float64(100 - i*4),
				Similarity: 0.9 - float64(i)*0.02,
			},
		}
	}
	return out
}

func TestSelectStrategyPrecedence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		profile models.EmotionalProfile
		ctx     models.MomentContext
		want    Strategy
	}{
		{
			name:    "experimental wins over everything",
			profile: models.EmotionalProfile{Openness: models.OpennessExperimental, Energy: models.EnergyDrained},
			ctx:     models.MomentContext{TimeOfDay: models.TimeLateNight},
			want:    StrategyAdventurous,
		},
		{
			name:    "drained forces safe",
			profile: models.EmotionalProfile{Openness: models.OpennessExploring, Energy: models.EnergyDrained},
			ctx:     models.MomentContext{DayClass: models.DayWeekend},
			want:    StrategySafe,
		},
		{
			name:    "weekend goes adventurous",
			profile: models.EmotionalProfile{Openness: models.OpennessExploring, Energy: models.EnergyNeutral},
			ctx:     models.MomentContext{TimeOfDay: models.TimeEvening, DayClass: models.DayWeekend},
			want:    StrategyAdventurous,
		},
		{
			name:    "default is safe",
			profile: models.EmotionalProfile{Openness: models.OpennessExploring, Energy: models.EnergyNeutral},
			ctx:     models.MomentContext{TimeOfDay: models.TimeEvening, DayClass: models.DayWeekday},
			want:    StrategySafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectStrategy(tt.profile, tt.ctx, rng); got != tt.want {
				t.Errorf("selectStrategy() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectStrategyLateNightIsCoinFlip(t *testing.T) {
	profile := models.EmotionalProfile{Openness: models.OpennessExploring, Energy: models.EnergyNeutral}
	ctx := models.MomentContext{TimeOfDay: models.TimeLateNight, DayClass: models.DayWeekday}

	seen := map[Strategy]bool{}
	for seed := int64(0); seed < 50; seed++ {
		got := selectStrategy(profile, ctx, rand.New(rand.NewSource(seed)))
		if got != StrategyMoodShifter && got != StrategyAdventurous {
			t.Fatalf("late night yielded %s", got)
		}
		seen[got] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected both late-night strategies over 50 seeds, got %v", seen)
	}
}

func TestSurpriseCount(t *testing.T) {
	exploring := models.EmotionalProfile{Openness: models.OpennessExploring}
	comfort := models.EmotionalProfile{Openness: models.OpennessComfortZone}

	tests := []struct {
		name      string
		profile   models.EmotionalProfile
		discovery bool
		listLen   int
		want      int
	}{
		{"base", comfort, false, 10, 2},
		{"discovery adds two", comfort, true, 10, 4},
		{"exploring adds one", exploring, false, 10, 3},
		{"both capped at 40 percent", exploring, true, 10, 4},
		{"short list caps hard", exploring, true, 5, 2},
		{"tiny list", comfort, false, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := surpriseCount(tt.profile, tt.discovery, tt.listLen); got != tt.want {
				t.Errorf("surpriseCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMixPlacesSurprisesAtFixedRanks(t *testing.T) {
	engine := NewEngine()
	out := engine.Mix(Input{
		Items:   itemPool(20),
		Profile: models.EmotionalProfile{Openness: models.OpennessComfortZone, Energy: models.EnergyNeutral},
		Context: models.MomentContext{TimeOfDay: models.TimeEvening, DayClass: models.DayWeekday},
		MaxList: 10,
		Seed:    42,
	})

	if len(out.Items) != 10 {
		t.Fatalf("got %d items, want 10", len(out.Items))
	}
	if out.Count != 2 {
		t.Fatalf("surprise count = %d, want 2", out.Count)
	}
	for i, item := range out.Items {
		if item.Rank != i+1 {
			t.Errorf("rank at index %d = %d, want %d", i, item.Rank, i+1)
		}
	}
	if !out.Items[2].IsSurprise {
		t.Errorf("rank 3 should be a surprise")
	}
	if !out.Items[5].IsSurprise {
		t.Errorf("rank 6 should be a surprise")
	}
	for i, item := range out.Items {
		if i != 2 && i != 5 && item.IsSurprise {
			t.Errorf("unexpected surprise at rank %d", i+1)
		}
	}
}

func TestMixNoDuplicates(t *testing.T) {
	engine := NewEngine()
	for seed := int64(0); seed < 20; seed++ {
		out := engine.Mix(Input{
			Items:             itemPool(25),
			Profile:           models.EmotionalProfile{Openness: models.OpennessExploring},
			Context:           models.MomentContext{DayClass: models.DayWeekend},
			DiscoverySurprise: true,
			MaxList:           10,
			Seed:              seed,
		})
		seen := map[string]bool{}
		for _, item := range out.Items {
			if seen[item.ID] {
				t.Fatalf("seed %d: duplicate item %s", seed, item.ID)
			}
			seen[item.ID] = true
		}
	}
}

func TestMixRespectsExcludes(t *testing.T) {
	engine := NewEngine()
	out := engine.Mix(Input{
		Items:   itemPool(15),
		Exclude: map[string]bool{"mv-0": true, "mv-1": true},
		MaxList: 10,
		Seed:    7,
	})
	for _, item := range out.Items {
		if item.ID == "mv-0" || item.ID == "mv-1" {
			t.Errorf("excluded item %s appeared in the list", item.ID)
		}
	}
}

func TestMixDeterministicForSeed(t *testing.T) {
	engine := NewEngine()
	in := Input{
		Items:             itemPool(20),
		Profile:           models.EmotionalProfile{Openness: models.OpennessExploring},
		Context:           models.MomentContext{DayClass: models.DayWeekend},
		DiscoverySurprise: true,
		MaxList:           10,
		Seed:              99,
	}
	a := engine.Mix(in)
	b := engine.Mix(in)

	if a.Strategy != b.Strategy || a.Count != b.Count {
		t.Fatalf("strategy/count differ: %v/%d vs %v/%d", a.Strategy, a.Count, b.Strategy, b.Count)
	}
	for i := range a.Items {
		if a.Items[i].ID != b.Items[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, a.Items[i].ID, b.Items[i].ID)
		}
	}
}

func TestMixShortPool(t *testing.T) {
	engine := NewEngine()
	out := engine.Mix(Input{
		Items:   itemPool(4),
		MaxList: 10,
		Seed:    1,
	})
	if len(out.Items) != 4 {
		t.Fatalf("got %d items, want 4", len(out.Items))
	}
	for i, item := range out.Items {
		if item.Rank != i+1 {
			t.Errorf("rank at %d = %d", i, item.Rank)
		}
	}
}

func TestSurpriseSlotsCarryMetadata(t *testing.T) {
	engine := NewEngine()
	out := engine.Mix(Input{
		Items:   itemPool(20),
		MaxList: 10,
		Seed:    3,
	})
	for _, item := range out.Items {
		if !item.IsSurprise {
			continue
		}
		if item.SurpriseKind == "" {
			t.Errorf("surprise %s missing kind", item.ID)
		}
		if item.SurpriseReason == "" {
			t.Errorf("surprise %s missing reason", item.ID)
		}
		if item.SurpriseConfidence < 0 || item.SurpriseConfidence > 100 {
			t.Errorf("surprise %s confidence %f out of range", item.ID, item.SurpriseConfidence)
		}
	}
}
