// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemoment/internal/analytics"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/flow"
	"github.com/tomtom215/cinemoment/internal/metrics"
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/pipeline"
	"github.com/tomtom215/cinemoment/internal/questions"
	"github.com/tomtom215/cinemoment/internal/refine"
	"github.com/tomtom215/cinemoment/internal/scoring"
	"github.com/tomtom215/cinemoment/internal/session"
	"github.com/tomtom215/cinemoment/internal/validation"
)

// Handler holds the dependencies shared by all moment endpoints.
type Handler struct {
	sessions session.Store
	catalog  *questions.Catalog
	orch     *pipeline.Orchestrator
	emitter  pipeline.Emitter
	scorer   *scoring.Validator
	now      func() time.Time
}

// NewHandler wires the moment endpoints. emitter may be nil.
func NewHandler(sessions session.Store, catalog *questions.Catalog, orch *pipeline.Orchestrator, emitter pipeline.Emitter) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		orch:     orch,
		emitter:  emitter,
		scorer:   scoring.NewValidator(),
		now:      time.Now,
	}
}

// startRequest is the POST /moments/start body. All fields are optional:
// domain defaults to movies, flow to standard, context to the server clock.
type startRequest struct {
	Domain  string          `json:"domain" validate:"omitempty,domain"`
	Flow    string          `json:"flow"`
	Context *contextPayload `json:"context"`
}

// contextPayload is the client-supplied slice of MomentContext. Unknown
// bucket values are passed through; the planner treats them as defaults.
type contextPayload struct {
	TimeOfDay string `json:"timeOfDay"`
	DayClass  string `json:"dayClass"`
	Season    string `json:"season"`
	Timezone  string `json:"timezone"`
}

type progressPayload struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type startResponse struct {
	SessionID string               `json:"sessionId"`
	Domain    models.Domain        `json:"domain"`
	Greeting  string               `json:"greeting"`
	Question  models.Question      `json:"question"`
	Progress  progressPayload      `json:"progress"`
	FlowType  models.FlowType      `json:"flowType"`
	Context   models.MomentContext `json:"context"`
}

// Start creates a session and returns the first question.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, r, err)
		return
	}

	domain := models.DomainMovies
	if req.Domain != "" {
		domain = models.Domain(req.Domain)
	}

	mctx := models.ContextFromTime(h.now())
	if req.Context != nil {
		if req.Context.TimeOfDay != "" {
			mctx.TimeOfDay = models.TimeOfDay(req.Context.TimeOfDay)
		}
		if req.Context.DayClass != "" {
			mctx.DayClass = models.DayClass(req.Context.DayClass)
		}
		if req.Context.Season != "" {
			mctx.Season = models.Season(req.Context.Season)
		}
		if req.Context.Timezone != "" {
			mctx.Timezone = req.Context.Timezone
		}
	}

	catalog := h.catalog.GetQuestions(r.Context(), domain)
	planned := flow.Plan(req.Flow, catalog, mctx)
	if len(planned.Questions) == 0 {
		respondError(w, r, faults.Internal(faults.NotFound("no questions available for domain %s", domain)))
		return
	}

	sess, err := h.sessions.Create(r.Context(), &models.Session{
		Domain:    domain,
		Flow:      planned.Type,
		Context:   planned.Context,
		Questions: planned.Questions,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.SessionsStarted.WithLabelValues(string(domain), string(planned.Type)).Inc()
	h.emit(analytics.Event{
		Type:      analytics.EventSessionStarted,
		SessionID: sess.ID,
		Domain:    domain,
		Payload:   map[string]any{"flow": string(planned.Type)},
	})

	first, _ := sess.NextQuestion()
	current, total := sess.Progress()
	respondJSON(w, r, http.StatusOK, startResponse{
		SessionID: sess.ID,
		Domain:    sess.Domain,
		Greeting:  planned.Greeting,
		Question:  first,
		Progress:  progressPayload{Current: current, Total: total},
		FlowType:  sess.Flow,
		Context:   sess.Context,
	})
}

type answerRequest struct {
	QuestionID   string `json:"questionId" validate:"required"`
	Answer       string `json:"answer" validate:"required"`
	ResponseTime int64  `json:"responseTime" validate:"omitempty,gte=0"`
}

type questionResponse struct {
	Question models.Question `json:"question"`
	Progress progressPayload `json:"progress"`
}

type recommendationsResponse struct {
	Type             string                      `json:"type"`
	Recommendations  []models.RecommendationItem `json:"recommendations"`
	Moment           scoring.MomentSummary       `json:"moment"`
	Validation       scoring.Scores              `json:"validation"`
	CanRefine        bool                        `json:"canRefine"`
	QuickAdjustments []string                    `json:"quickAdjustments"`
}

// Answer records one answer. Duplicate question IDs are silent no-ops. Once
// the questionnaire completes, the response switches to recommendations.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, r, err)
		return
	}

	answeredAt := h.now().UTC()
	sess, err := h.sessions.Update(r.Context(), sessionID, func(s *models.Session) error {
		q, ok := s.QuestionByID(req.QuestionID)
		if !ok {
			return faults.NotFound("question %q is not part of this session", req.QuestionID)
		}
		if _, ok := q.OptionByID(req.Answer); !ok {
			return faults.Validation("answer %q is not an option of question %q", req.Answer, req.QuestionID)
		}
		s.RecordAnswer(models.Answer{
			QuestionID:     req.QuestionID,
			OptionID:       req.Answer,
			ResponseTimeMS: req.ResponseTime,
			AnsweredAt:     answeredAt,
		})
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.AnswersRecorded.Inc()
	h.emit(analytics.Event{
		Type:      analytics.EventAnswerRecorded,
		SessionID: sess.ID,
		Domain:    sess.Domain,
		Payload:   map[string]any{"questionId": req.QuestionID, "answer": req.Answer},
	})

	if !sess.Complete() {
		next, _ := sess.NextQuestion()
		current, total := sess.Progress()
		respondJSON(w, r, http.StatusOK, questionResponse{
			Question: next,
			Progress: progressPayload{Current: current, Total: total},
		})
		return
	}

	rec, err := h.orch.Generate(r.Context(), sessionID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, recommendationsResponse{
		Type:             "recommendations",
		Recommendations:  rec.Items,
		Moment:           rec.Moment,
		Validation:       rec.Scores,
		CanRefine:        true,
		QuickAdjustments: refine.QuickAdjustNames(),
	})
}

type feedbackPayload struct {
	MovieID  string   `json:"movieId" validate:"required"`
	Reaction string   `json:"reaction" validate:"required,reaction"`
	Tags     []string `json:"tags"`
	FreeText string   `json:"freeText"`
}

type refineRequest struct {
	Feedback    []feedbackPayload `json:"feedback" validate:"omitempty,dive"`
	Action      string            `json:"action" validate:"omitempty,oneof=more_like_this try_different too_intense too_light"`
	QuickAdjust string            `json:"quickAdjust"`
}

type refineResponse struct {
	Type            string                      `json:"type"`
	Recommendations []models.RecommendationItem `json:"recommendations"`
	Strategy        string                      `json:"strategy"`
	Confidence      float64                     `json:"confidence"`
	Explanation     string                      `json:"explanation,omitempty"`
	Adjustments     []string                    `json:"adjustments"`
	Validation      scoring.Scores              `json:"validation"`
}

// Refine applies per-item feedback (or a named quick adjust shortcut) and
// returns the re-run list.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req refineRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, r, err)
		return
	}

	// The quickAdjust shortcut runs the adjustment table but keeps the
	// refined-recommendations response shape.
	if req.QuickAdjust != "" {
		result, err := h.orch.QuickAdjust(r.Context(), sessionID, req.QuickAdjust)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, refineResponse{
			Type:            "refined_recommendations",
			Recommendations: result.Recommendation.Items,
			Strategy:        "quick_adjust",
			Confidence:      1,
			Explanation:     result.Applied,
			Adjustments:     []string{result.Adjustment},
			Validation:      result.Recommendation.Scores,
		})
		return
	}

	if len(req.Feedback) == 0 && req.Action == "" {
		respondError(w, r, faults.Validation("feedback, action, or quickAdjust is required"))
		return
	}

	feedback := make([]models.ItemFeedback, len(req.Feedback))
	for i, fb := range req.Feedback {
		feedback[i] = models.ItemFeedback{
			ItemID:   fb.MovieID,
			Reaction: models.Reaction(fb.Reaction),
			Tags:     fb.Tags,
			FreeText: fb.FreeText,
		}
	}

	result, err := h.orch.Refine(r.Context(), sessionID, feedback, refine.Action(req.Action))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, refineResponse{
		Type:            "refined_recommendations",
		Recommendations: result.Recommendation.Items,
		Strategy:        string(result.Strategy),
		Confidence:      result.Confidence,
		Explanation:     result.Explanation,
		Adjustments:     result.Adjustments,
		Validation:      result.Recommendation.Scores,
	})
}

type adjustRequest struct {
	AdjustmentType string `json:"adjustmentType" validate:"required"`
}

type adjustResponse struct {
	Type              string                      `json:"type"`
	Adjustment        string                      `json:"adjustment"`
	Recommendations   []models.RecommendationItem `json:"recommendations"`
	AdjustmentApplied string                      `json:"adjustmentApplied"`
	Validation        scoring.Scores              `json:"validation"`
}

// Adjust applies a named quick adjustment and returns the re-run list.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req adjustRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.orch.QuickAdjust(r.Context(), sessionID, req.AdjustmentType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adjustResponse{
		Type:              "adjusted_recommendations",
		Adjustment:        result.Adjustment,
		Recommendations:   result.Recommendation.Items,
		AdjustmentApplied: result.Applied,
		Validation:        result.Recommendation.Scores,
	})
}

type interactionRequest struct {
	MovieID         string         `json:"movieId" validate:"required"`
	InteractionType string         `json:"interactionType" validate:"required,oneof=viewed selected trailer_watched added_to_list dismissed shared"`
	Metadata        map[string]any `json:"metadata"`
}

type interactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Interaction records a client-side interaction with a recommended item.
// The write goes through the fire-and-forget analytics path.
func (h *Handler) Interaction(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req interactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, r, err)
		return
	}

	sess, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	payload := map[string]any{
		"movieId":         req.MovieID,
		"interactionType": req.InteractionType,
	}
	for k, v := range req.Metadata {
		payload["meta_"+k] = v
	}
	h.emit(analytics.Event{
		Type:      analytics.EventInteractionRecorded,
		SessionID: sess.ID,
		Domain:    sess.Domain,
		Payload:   payload,
	})

	respondJSON(w, r, http.StatusOK, interactionResponse{
		Success: true,
		Message: "interaction recorded",
	})
}

// Moment returns the moment summary for a session that has produced
// recommendations, recomputed from the persisted profile and list.
func (h *Handler) Moment(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	sess, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if sess.Profile == nil {
		respondError(w, r, faults.NotFound("no moment has been generated for this session"))
		return
	}

	scores := h.scorer.Score(sess.LastRecommendations, *sess.Profile)
	respondJSON(w, r, http.StatusOK, h.scorer.Summary(*sess.Profile, scores))
}

type domainsResponse struct {
	Domains []models.Domain `json:"domains"`
}

// Domains lists the supported content domains.
func (h *Handler) Domains(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, domainsResponse{Domains: models.Domains()})
}

func (h *Handler) emit(e analytics.Event) {
	if h.emitter == nil {
		return
	}
	e.OccurredAt = h.now().UTC()
	h.emitter.Emit(e)
}
