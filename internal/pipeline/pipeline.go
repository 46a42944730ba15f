// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package pipeline orchestrates one recommendation run: session snapshot,
// preference mapping, embedding, retrieval with fallbacks, enrichment,
// surprise mixing, validation, and the write-back. Stages carry their own
// deadlines inside a total request budget; when the budget runs out the
// most complete partial result wins, flagged degraded.
package pipeline

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/analytics"
	"github.com/tomtom215/cinemoment/internal/embedding"
	"github.com/tomtom215/cinemoment/internal/enrich"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/mapper"
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/refine"
	"github.com/tomtom215/cinemoment/internal/retrieval"
	"github.com/tomtom215/cinemoment/internal/scoring"
	"github.com/tomtom215/cinemoment/internal/session"
	"github.com/tomtom215/cinemoment/internal/surprise"
)

// maxListLength caps the returned recommendation list.
const maxListLength = 10

// Emitter is the analytics dependency; nil disables emission.
type Emitter interface {
	Emit(e analytics.Event)
}

// Recommendation is one finished pipeline run.
type Recommendation struct {
	Items    []models.RecommendationItem
	Profile  models.EmotionalProfile
	Scores   scoring.Scores
	Moment   scoring.MomentSummary
	Strategy surprise.Strategy
	Degraded bool
}

// Options bundles the orchestrator's tuning knobs.
type Options struct {
	TopK             int
	RetrievalTimeout time.Duration
	TotalBudget      time.Duration
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	sessions   session.Store
	embeddings *embedding.Cache
	searcher   retrieval.Searcher
	catalog    retrieval.Searcher
	llm        retrieval.Searcher // optional second fallback
	enricher   *enrich.Enricher
	surprises  *surprise.Engine
	validator  *scoring.Validator
	refiner    *refine.Engine
	emitter    Emitter

	opts   Options
	now    func() time.Time
	seedFn func(sessionID string) int64
	logger zerolog.Logger
}

// New builds an orchestrator. llmFallback and emitter may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(
	sessions session.Store,
	embeddings *embedding.Cache,
	searcher retrieval.Searcher,
	catalogFallback retrieval.Searcher,
	llmFallback retrieval.Searcher,
	enricher *enrich.Enricher,
	emitter Emitter,
	opts Options,
	logger zerolog.Logger,
) *Orchestrator {
	if opts.TopK <= 0 {
		opts.TopK = 20
	}
	if opts.RetrievalTimeout <= 0 {
		opts.RetrievalTimeout = 2 * time.Second
	}
	if opts.TotalBudget <= 0 {
		opts.TotalBudget = 8 * time.Second
	}
	return &Orchestrator{
		sessions:   sessions,
		embeddings: embeddings,
		searcher:   searcher,
		catalog:    catalogFallback,
		llm:        llmFallback,
		enricher:   enricher,
		surprises:  surprise.NewEngine(),
		validator:  scoring.NewValidator(),
		refiner:    refine.NewEngine(),
		emitter:    emitter,
		opts:       opts,
		now:        time.Now,
		seedFn:     defaultSeed,
		logger:     logger.With().Str("component", "pipeline").Logger(),
	}
}

// defaultSeed mixes the session identity with the clock so each run is
// reproducible within a request but varies across runs.
func defaultSeed(sessionID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sessionID))
	return int64(h.Sum64()) ^ time.Now().UnixNano()
}

// Generate runs the full pipeline for a session and persists the outcome.
func (o *Orchestrator) Generate(ctx context.Context, sessionID string) (*Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.TotalBudget)
	defer cancel()

	sess, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rec := o.generate(ctx, sess)

	profile := rec.Profile
	items := rec.Items
	generatedAt := o.now().UTC()
	if _, err := o.sessions.Update(ctx, sessionID, func(s *models.Session) error {
		s.Profile = &profile
		s.LastRecommendations = items
		s.GeneratedAt = generatedAt
		return nil
	}); err != nil {
		// The list was produced; a failed write-back only loses refinement
		// context, so degrade instead of erroring.
		o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("session write-back failed")
		rec.Degraded = true
		rec.Scores.Degraded = true
	}

	o.emit(analytics.Event{
		Type:      analytics.EventRecommendations,
		SessionID: sess.ID,
		Domain:    sess.Domain,
		Payload: map[string]any{
			"count":    len(rec.Items),
			"strategy": string(rec.Strategy),
			"score":    rec.Scores.Overall,
			"degraded": rec.Degraded,
		},
	})
	return rec, nil
}

// generate is the stage sequence over a session snapshot.
func (o *Orchestrator) generate(ctx context.Context, sess *models.Session) *Recommendation {
	mapped := mapper.Map(sess)
	rec := &Recommendation{Profile: mapped.Profile}

	candidates, degraded := o.retrieve(ctx, sess, mapped)
	rec.Degraded = degraded

	candidates = o.dropExcluded(candidates, sess.ExcludeItemIDs)

	if len(candidates) == 0 {
		rec.Scores = scoring.Scores{Degraded: true}
		rec.Degraded = true
		rec.Moment = o.validator.Summary(mapped.Profile, rec.Scores)
		return rec
	}

	var items []models.RecommendationItem
	if ctx.Err() != nil {
		// Budget exhausted before enrichment: return the bare candidates.
		rec.Degraded = true
		items = make([]models.RecommendationItem, len(candidates))
		for i, c := range candidates {
			items[i] = models.RecommendationItem{Candidate: c}
		}
	} else {
		items = o.enricher.Enrich(ctx, candidates)
	}

	answers := sess.AnswerMap()
	mixed := o.surprises.Mix(surprise.Input{
		Items:             items,
		Profile:           mapped.Profile,
		Context:           sess.Context,
		DiscoverySurprise: answers["discovery_mode"] == "surprise",
		MaxList:           maxListLength,
		Seed:              o.seedFn(sess.ID),
	})
	rec.Items = mixed.Items
	rec.Strategy = mixed.Strategy

	rec.Scores = o.validator.Score(rec.Items, mapped.Profile)
	rec.Scores.Degraded = rec.Scores.Degraded || rec.Degraded
	rec.Degraded = rec.Scores.Degraded
	rec.Moment = o.validator.Summary(mapped.Profile, rec.Scores)
	return rec
}

// retrieve resolves candidates: embedding + index first, then the LLM
// fallback when configured, then the embedded catalog. The second return
// reports whether any fallback was taken.
func (o *Orchestrator) retrieve(ctx context.Context, sess *models.Session, mapped mapper.Output) ([]models.Candidate, bool) {
	query := retrieval.Query{
		Domain:  sess.Domain,
		Text:    mapped.QueryText,
		Filters: mapped.Filters,
		TopK:    o.opts.TopK,
	}

	// The embedding cache is single-flight and falls back deterministically,
	// so a failure here never aborts the run.
	embedded, err := o.embeddings.Vector(ctx, models.FingerprintQuery(mapped.QueryText), mapped.QueryText, mapped.TraitWeights)
	if err == nil {
		query.Vector = embedded.Vector
	}

	searchCtx, cancel := context.WithTimeout(ctx, o.opts.RetrievalTimeout)
	candidates, err := o.searcher.Search(searchCtx, query)
	cancel()
	if err == nil {
		return candidates, false
	}
	if !faults.IsCode(err, faults.CodeUnavailable) && ctx.Err() == nil {
		o.logger.Error().Err(err).Msg("retrieval failed with unexpected error")
	}

	// Index is down. The LLM fallback gets one shot when configured; the
	// embedded catalog is the guaranteed floor and needs no network.
	if o.llm != nil {
		if llmCandidates, llmErr := o.llm.Search(ctx, query); llmErr == nil && len(llmCandidates) > 0 {
			return llmCandidates, true
		} else if llmErr != nil {
			o.logger.Warn().Err(llmErr).Msg("llm fallback failed, using embedded catalog")
		}
	}

	fallbackQuery := query
	fallbackQuery.Vector = nil
	catalogCandidates, catErr := o.catalog.Search(ctx, fallbackQuery)
	if catErr != nil {
		o.logger.Error().Err(catErr).Msg("catalog fallback failed")
		return nil, true
	}
	return catalogCandidates, true
}

func (o *Orchestrator) dropExcluded(candidates []models.Candidate, excluded []string) []models.Candidate {
	if len(excluded) == 0 {
		return candidates
	}
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	out := candidates[:0]
	for _, c := range candidates {
		if !skip[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (o *Orchestrator) emit(e analytics.Event) {
	if o.emitter != nil {
		o.emitter.Emit(e)
	}
}
