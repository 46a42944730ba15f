// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package flow plans questionnaire flows: which catalog questions to ask, in
// what shape, and with what contextual phrasing. Question identifiers are
// never changed by planning, only prompts, so answers stay comparable across
// flow variants.
package flow

import (
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/questions"
)

// QuestionFlow is a planned questionnaire.
type QuestionFlow struct {
	Type      models.FlowType      `json:"flowType"`
	Greeting  string               `json:"greeting"`
	Questions []models.Question    `json:"questions"`
	Context   models.MomentContext `json:"context"`
}

// flowQuestionIDs maps each flow to the catalog question IDs it asks, in
// order. Standard asks the five core questions; deep adds pace and era;
// quick keeps the three that drive the profile hardest; visual is the single
// mood board.
var flowQuestionIDs = map[models.FlowType][]string{
	models.FlowStandard: {
		questions.QEmotionalState, questions.QEnergyLevel,
		questions.QAttentionLevel, questions.QDiscoveryMode,
		questions.QPersonalContext,
	},
	models.FlowQuick: {
		questions.QEmotionalState, questions.QEnergyLevel,
		questions.QDiscoveryMode,
	},
	models.FlowDeep: {
		questions.QEmotionalState, questions.QEnergyLevel,
		questions.QAttentionLevel, questions.QDiscoveryMode,
		questions.QPersonalContext, questions.QPacePreference,
		questions.QEraPreference,
	},
	models.FlowSurprise: {
		questions.QEmotionalState, questions.QEnergyLevel,
		questions.QDiscoveryMode, questions.QPersonalContext,
	},
	models.FlowVisual: {
		questions.QMoodBoard,
	},
}

// surprisePrompts re-templates prompts as metaphors for the surprise flow.
// IDs and options are untouched.
var surprisePrompts = map[string]string{
	questions.QEmotionalState:  "If tonight were weather, what's the forecast inside you?",
	questions.QEnergyLevel:     "Is your inner engine idling, cruising, or redlining?",
	questions.QDiscoveryMode:   "Known road or unmarked trail?",
	questions.QPersonalContext: "If tonight had a secret mission, what would it be?",
}

// Plan selects and shapes a flow from the catalog set. Unknown flow names
// fall back to standard. The catalog set must be the session's pinned
// question list so ordinals stay stable.
func Plan(flowName string, catalog []models.Question, ctx models.MomentContext) QuestionFlow {
	flowType := models.NormalizeFlow(flowName)

	ids := flowQuestionIDs[flowType]
	planned := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := findQuestion(catalog, id)
		if !ok {
			continue
		}
		planned = append(planned, rewriteQuestion(q, flowType, ctx))
	}

	// A catalog missing every planned ID would leave the questionnaire
	// empty; fall back to the catalog order.
	if len(planned) == 0 {
		planned = append(planned, catalog...)
	}

	for i := range planned {
		planned[i].Ordinal = i + 1
	}

	return QuestionFlow{
		Type:      flowType,
		Greeting:  greeting(ctx),
		Questions: planned,
		Context:   ctx,
	}
}

func findQuestion(catalog []models.Question, id string) (models.Question, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// rewriteQuestion applies flow- and context-sensitive prompt variations.
func rewriteQuestion(q models.Question, flowType models.FlowType, ctx models.MomentContext) models.Question {
	if flowType == models.FlowSurprise {
		if prompt, ok := surprisePrompts[q.ID]; ok {
			q.Prompt = prompt
			return q
		}
	}

	if q.ID == questions.QEnergyLevel {
		switch ctx.TimeOfDay {
		case models.TimeMorning:
			q.Prompt = "How much energy are you starting the day with?"
		case models.TimeLateNight:
			q.Prompt = "It's late — how much is left in the tank?"
		}
	}

	if q.ID == questions.QPersonalContext && ctx.DayClass == models.DayWeekend {
		q.Prompt = "What is this weekend moment really about?"
	}

	return q
}

// greeting varies by time of day; season shades the late-night line.
func greeting(ctx models.MomentContext) string {
	switch ctx.TimeOfDay {
	case models.TimeMorning:
		return "Good morning. Let's find something worth your morning."
	case models.TimeAfternoon:
		return "Good afternoon. Let's find the right thing to watch."
	case models.TimeEvening:
		return "Good evening. Let's find tonight's pick."
	default:
		if ctx.Season == models.SeasonWinter {
			return "Late winter night — let's find something that fits it."
		}
		return "Up late? Let's make it worth it."
	}
}
