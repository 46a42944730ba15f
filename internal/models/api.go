// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

// APIError is the wire shape of every error response. Code values come from
// the faults taxonomy and are stable API contract.
type APIError struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	Details    string `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// Reaction is a per-item feedback value.
type Reaction string

const (
	ReactionLove    Reaction = "love"
	ReactionLike    Reaction = "like"
	ReactionNeutral Reaction = "neutral"
	ReactionDislike Reaction = "dislike"
	ReactionHate    Reaction = "hate"
)

// Valid reports whether the reaction is one of the closed set.
func (r Reaction) Valid() bool {
	switch r {
	case ReactionLove, ReactionLike, ReactionNeutral, ReactionDislike, ReactionHate:
		return true
	}
	return false
}

// Positive reports whether the reaction counts as a like signal.
func (r Reaction) Positive() bool {
	return r == ReactionLove || r == ReactionLike
}

// Negative reports whether the reaction counts as a dislike signal.
func (r Reaction) Negative() bool {
	return r == ReactionDislike || r == ReactionHate
}

// ItemFeedback is one per-item reaction in a refinement request.
type ItemFeedback struct {
	ItemID   string   `json:"movieId"`
	Reaction Reaction `json:"reaction"`
	Tags     []string `json:"tags,omitempty"`
	FreeText string   `json:"freeText,omitempty"`
}
