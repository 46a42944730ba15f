// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package analytics is the fire-and-forget event path: a bounded in-memory
// queue that drops on overflow (counting the drops) in front of a DuckDB
// sink. Nothing here ever blocks a user-facing request.
package analytics

import (
	"time"

	"github.com/tomtom215/cinemoment/internal/models"
)

// EventType is the closed event taxonomy.
type EventType string

const (
	EventSessionStarted      EventType = "session_started"
	EventAnswerRecorded      EventType = "answer_recorded"
	EventEmbeddingResolved   EventType = "embedding_resolved"
	EventRecommendations     EventType = "recommendations_generated"
	EventRefinementApplied   EventType = "refinement_applied"
	EventQuickAdjustApplied  EventType = "quick_adjust_applied"
	EventInteractionRecorded EventType = "interaction_recorded"
)

// Event is one analytics record. Payload carries event-specific fields;
// keep it flat and JSON-serializable.
type Event struct {
	Type       EventType      `json:"type"`
	SessionID  string         `json:"sessionId"`
	Domain     models.Domain  `json:"domain"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}
