// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import "time"

// FlowType names a questionnaire flow shape.
type FlowType string

const (
	FlowStandard FlowType = "standard"
	FlowQuick    FlowType = "quick"
	FlowDeep     FlowType = "deep"
	FlowSurprise FlowType = "surprise"
	FlowVisual   FlowType = "visual"
)

// NormalizeFlow maps unknown flow names to standard.
func NormalizeFlow(name string) FlowType {
	switch FlowType(name) {
	case FlowQuick, FlowDeep, FlowSurprise, FlowVisual:
		return FlowType(name)
	default:
		return FlowStandard
	}
}

// RefinementRecord is one applied refinement. History is append-only.
type RefinementRecord struct {
	Strategy    string    `json:"strategy"`
	Adjustments []string  `json:"adjustments"`
	Confidence  float64   `json:"confidence"`
	AppliedAt   time.Time `json:"appliedAt"`
}

// Session is the unit of state for one questionnaire run. It is exclusively
// owned by the session store; everything outside the store works on
// snapshots and writes back through the store's Update.
type Session struct {
	ID      string        `json:"id"`
	Domain  Domain        `json:"domain"`
	Flow    FlowType      `json:"flow"`
	Context MomentContext `json:"context"`

	// Questions pins the catalog version the session started under so
	// ordinals stay stable across catalog reloads.
	Questions []Question `json:"questions"`

	Answers []Answer          `json:"answers"`
	Profile *EmotionalProfile `json:"profile,omitempty"`

	// Layered pipeline deltas from refinements and quick adjustments.
	QuerySuffixes  []string           `json:"querySuffixes,omitempty"`
	FilterOverlay  FilterPredicate    `json:"filterOverlay,omitempty"`
	TraitBoosts    map[string]float64 `json:"traitBoosts,omitempty"`
	ExcludeItemIDs []string           `json:"excludeItemIds,omitempty"`

	LastRecommendations []RecommendationItem `json:"lastRecommendations,omitempty"`
	Refinements         []RefinementRecord   `json:"refinements,omitempty"`
	GeneratedAt         time.Time            `json:"generatedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnswerFor returns the recorded answer for a question, if any.
func (s *Session) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// RecordAnswer appends an answer unless the question was already answered.
// Returns false on a duplicate; the existing answer is left untouched.
func (s *Session) RecordAnswer(a Answer) bool {
	if _, dup := s.AnswerFor(a.QuestionID); dup {
		return false
	}
	s.Answers = append(s.Answers, a)
	return true
}

// AnswerMap returns questionID → optionID for fingerprinting and mapping.
func (s *Session) AnswerMap() map[string]string {
	m := make(map[string]string, len(s.Answers))
	for _, a := range s.Answers {
		m[a.QuestionID] = a.OptionID
	}
	return m
}

// NextQuestion returns the first pinned question without an answer.
func (s *Session) NextQuestion() (Question, bool) {
	for _, q := range s.Questions {
		if _, answered := s.AnswerFor(q.ID); !answered {
			return q, true
		}
	}
	return Question{}, false
}

// Progress reports the 1-based position of the next question and the total.
// Once every question is answered, current equals total.
func (s *Session) Progress() (current, total int) {
	total = len(s.Questions)
	current = len(s.Answers) + 1
	if current > total {
		current = total
	}
	return current, total
}

// Complete reports whether every pinned question has an answer.
func (s *Session) Complete() bool {
	return len(s.Answers) >= len(s.Questions)
}

// QuestionByID looks up a pinned question.
func (s *Session) QuestionByID(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy so callers can hold snapshots while the store
// retains exclusive ownership of the original.
func (s *Session) Clone() *Session {
	out := *s
	out.Questions = append([]Question(nil), s.Questions...)
	out.Answers = append([]Answer(nil), s.Answers...)
	out.QuerySuffixes = append([]string(nil), s.QuerySuffixes...)
	out.ExcludeItemIDs = append([]string(nil), s.ExcludeItemIDs...)
	out.LastRecommendations = append([]RecommendationItem(nil), s.LastRecommendations...)
	out.Refinements = append([]RefinementRecord(nil), s.Refinements...)
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	if s.TraitBoosts != nil {
		out.TraitBoosts = make(map[string]float64, len(s.TraitBoosts))
		for k, v := range s.TraitBoosts {
			out.TraitBoosts[k] = v
		}
	}
	return &out
}
