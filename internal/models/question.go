// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import "time"

// Question is a single questionnaire step. Questions are read-only at
// runtime; a session pins the question set it was started under so answer
// ordinals stay comparable across catalog reloads.
type Question struct {
	ID          string   `json:"id"`
	Ordinal     int      `json:"ordinal"`
	Prompt      string   `json:"prompt"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options"`
}

// Option is one selectable answer. Trait weights feed the retrieval query
// and the deterministic fallback embedding; Filters is an optional predicate
// overlay applied when the option is chosen.
type Option struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Clause  string             `json:"clause,omitempty"`
	Traits  map[string]float64 `json:"traits,omitempty"`
	Filters FilterPredicate    `json:"filters,omitempty"`
}

// OptionByID returns the option with the given identifier, if present.
func (q Question) OptionByID(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Answer records a submitted option for a question. Answers are unique per
// question within a session; resubmission is a no-op.
type Answer struct {
	QuestionID     string    `json:"questionId"`
	OptionID       string    `json:"optionId"`
	ResponseTimeMS int64     `json:"responseTimeMs,omitempty"`
	AnsweredAt     time.Time `json:"answeredAt"`
}
