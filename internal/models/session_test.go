// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import "testing"

func pinnedSession() *Session {
	return &Session{
		ID:     "s-1",
		Domain: DomainMovies,
		Flow:   FlowQuick,
		Questions: []Question{
			{ID: "q1", Ordinal: 1, Options: []Option{{ID: "a"}, {ID: "b"}}},
			{ID: "q2", Ordinal: 2, Options: []Option{{ID: "a"}, {ID: "b"}}},
			{ID: "q3", Ordinal: 3, Options: []Option{{ID: "a"}, {ID: "b"}}},
		},
	}
}

func TestRecordAnswerDuplicateKeepsFirst(t *testing.T) {
	s := pinnedSession()

	if !s.RecordAnswer(Answer{QuestionID: "q1", OptionID: "a"}) {
		t.Fatal("first answer rejected")
	}
	if s.RecordAnswer(Answer{QuestionID: "q1", OptionID: "b"}) {
		t.Fatal("duplicate answer accepted")
	}

	got, ok := s.AnswerFor("q1")
	if !ok || got.OptionID != "a" {
		t.Errorf("stored answer = %+v, want option a", got)
	}
	if len(s.Answers) != 1 {
		t.Errorf("answers = %d, want 1", len(s.Answers))
	}
}

func TestProgressAndNextQuestion(t *testing.T) {
	s := pinnedSession()

	steps := []struct {
		answer       string
		wantNext     string
		wantCurrent  int
		wantComplete bool
	}{
		{"", "q1", 1, false},
		{"q1", "q2", 2, false},
		{"q2", "q3", 3, false},
		{"q3", "", 3, true},
	}

	for _, step := range steps {
		if step.answer != "" {
			s.RecordAnswer(Answer{QuestionID: step.answer, OptionID: "a"})
		}
		next, ok := s.NextQuestion()
		if ok != (step.wantNext != "") {
			t.Fatalf("after %q: next ok = %v", step.answer, ok)
		}
		if ok && next.ID != step.wantNext {
			t.Errorf("after %q: next = %s, want %s", step.answer, next.ID, step.wantNext)
		}
		current, total := s.Progress()
		if current != step.wantCurrent || total != 3 {
			t.Errorf("after %q: progress = %d/%d, want %d/3", step.answer, current, total, step.wantCurrent)
		}
		if s.Complete() != step.wantComplete {
			t.Errorf("after %q: complete = %v", step.answer, s.Complete())
		}
	}
}

func TestAnswerMap(t *testing.T) {
	s := pinnedSession()
	s.RecordAnswer(Answer{QuestionID: "q2", OptionID: "b"})
	s.RecordAnswer(Answer{QuestionID: "q1", OptionID: "a"})

	m := s.AnswerMap()
	if len(m) != 2 || m["q1"] != "a" || m["q2"] != "b" {
		t.Errorf("answer map = %v", m)
	}
}

func TestCloneIsolation(t *testing.T) {
	s := pinnedSession()
	s.RecordAnswer(Answer{QuestionID: "q1", OptionID: "a"})
	s.Profile = &EmotionalProfile{Mood: MoodContent}
	s.TraitBoosts = map[string]float64{"calm": 0.2}
	s.QuerySuffixes = []string{"but lighter"}

	c := s.Clone()
	c.RecordAnswer(Answer{QuestionID: "q2", OptionID: "b"})
	c.Profile.Mood = MoodMelancholic
	c.TraitBoosts["calm"] = 0.9
	c.QuerySuffixes[0] = "mutated"

	if len(s.Answers) != 1 {
		t.Errorf("original answers grew to %d", len(s.Answers))
	}
	if s.Profile.Mood != MoodContent {
		t.Error("clone mutation leaked into original profile")
	}
	if s.TraitBoosts["calm"] != 0.2 {
		t.Error("clone mutation leaked into trait boosts")
	}
	if s.QuerySuffixes[0] != "but lighter" {
		t.Error("clone mutation leaked into query suffixes")
	}
}

func TestNormalizeFlow(t *testing.T) {
	tests := []struct {
		in   string
		want FlowType
	}{
		{"quick", FlowQuick},
		{"deep", FlowDeep},
		{"surprise", FlowSurprise},
		{"visual", FlowVisual},
		{"standard", FlowStandard},
		{"", FlowStandard},
		{"banana", FlowStandard},
	}
	for _, tt := range tests {
		if got := NormalizeFlow(tt.in); got != tt.want {
			t.Errorf("NormalizeFlow(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
