// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/analytics"
	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/embedding"
	"github.com/tomtom215/cinemoment/internal/enrich"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/flow"
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/questions"
	"github.com/tomtom215/cinemoment/internal/refine"
	"github.com/tomtom215/cinemoment/internal/retrieval"
	"github.com/tomtom215/cinemoment/internal/session"
)

// stubSearcher returns a fixed candidate list, or an error, and records the
// queries it saw.
type stubSearcher struct {
	mu         sync.Mutex
	candidates []models.Candidate
	err        error
	queries    []retrieval.Query
}

func (s *stubSearcher) Search(_ context.Context, q retrieval.Query) ([]models.Candidate, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func (s *stubSearcher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *stubSearcher) lastQuery() retrieval.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

// recordingEmitter captures analytics events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingEmitter) Emit(e analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEmitter) byType(t analytics.EventType) []analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []analytics.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func sampleCandidates(n int) []models.Candidate {
	out := make([]models.Candidate, n)
	for i := range out {
		out[i] = models.Candidate{
			ID:             fmt.Sprintf("mv-%03d", i),
			Title:          fmt.Sprintf("Title %d", i),
			Year:           1990 + i,
			Genres:         []string{"drama"},
			Rating:         7.0 + float64(i%3)*0.5,
			Popularity:     50 - float64(i),
			VoteCount:      1000 + i,
			RuntimeMinutes: 100 + i,
			Similarity:     0.9 - float64(i)*0.01,
			Overview:       "An overview.",
		}
	}
	return out
}

type testEnv struct {
	orch    *Orchestrator
	store   session.Store
	index   *stubSearcher
	catalog *stubSearcher
	emitter *recordingEmitter
}

func newTestEnv(t *testing.T, index, catalog *stubSearcher) *testEnv {
	t.Helper()
	store := session.NewMemoryStore(30 * time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	embeddings := embedding.NewCache(nil, time.Hour, time.Second, zerolog.Nop())
	t.Cleanup(func() { embeddings.Close() })

	enricher := enrich.NewEnricher(nil, config.EnrichConfig{}, zerolog.Nop())
	emitter := &recordingEmitter{}

	orch := New(store, embeddings, index, catalog, nil, enricher, emitter, Options{}, zerolog.Nop())
	orch.seedFn = func(string) int64 { return 42 }
	return &testEnv{orch: orch, store: store, index: index, catalog: catalog, emitter: emitter}
}

// startSession creates a fully answered movie session.
func startSession(t *testing.T, store session.Store) *models.Session {
	t.Helper()
	planned := flow.Plan("standard", questions.BuiltinQuestions(models.DomainMovies), models.MomentContext{})
	sess := &models.Session{
		Domain:    models.DomainMovies,
		Flow:      planned.Type,
		Questions: planned.Questions,
	}
	created, err := store.Create(context.Background(), sess)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	created, err = store.Update(context.Background(), created.ID, func(s *models.Session) error {
		for _, q := range s.Questions {
			s.RecordAnswer(models.Answer{
				QuestionID: q.ID,
				OptionID:   q.Options[0].ID,
				AnsweredAt: time.Now(),
			})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("answer session: %v", err)
	}
	return created
}

func TestGenerateHappyPath(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(20)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)

	rec, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.Degraded {
		t.Error("happy path should not be degraded")
	}
	if len(rec.Items) == 0 || len(rec.Items) > 10 {
		t.Fatalf("got %d items, want 1..10", len(rec.Items))
	}
	for i, item := range rec.Items {
		if item.Rank != i+1 {
			t.Errorf("item %d has rank %d, want %d", i, item.Rank, i+1)
		}
	}
	if rec.Scores.Overall < 0 || rec.Scores.Overall > 100 {
		t.Errorf("overall score %d out of range", rec.Scores.Overall)
	}
	if rec.Moment.Text == "" {
		t.Error("moment summary text should be set")
	}
	if env.catalog.calls() != 0 {
		t.Errorf("catalog consulted %d times on the happy path", env.catalog.calls())
	}
}

func TestGeneratePersistsOutcome(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(15)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)

	rec, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	stored, err := env.store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Profile == nil {
		t.Fatal("profile not persisted")
	}
	if len(stored.LastRecommendations) != len(rec.Items) {
		t.Errorf("persisted %d items, want %d", len(stored.LastRecommendations), len(rec.Items))
	}
	if stored.GeneratedAt.IsZero() {
		t.Error("generatedAt not persisted")
	}
}

func TestGenerateFallsBackToCatalogAndDegrades(t *testing.T) {
	index := &stubSearcher{err: faults.Unavailable("index down", nil)}
	catalog := &stubSearcher{candidates: sampleCandidates(12)}
	env := newTestEnv(t, index, catalog)
	sess := startSession(t, env.store)

	rec, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !rec.Degraded {
		t.Error("fallback run should be degraded")
	}
	if len(rec.Items) == 0 {
		t.Fatal("fallback produced no items")
	}
	if catalog.calls() != 1 {
		t.Errorf("catalog consulted %d times, want 1", catalog.calls())
	}
	if v := catalog.lastQuery().Vector; v != nil {
		t.Error("catalog fallback should receive a nil vector")
	}
}

func TestGenerateLLMFallbackBeforeCatalog(t *testing.T) {
	index := &stubSearcher{err: faults.Unavailable("index down", nil)}
	catalog := &stubSearcher{candidates: sampleCandidates(12)}
	llm := &stubSearcher{candidates: sampleCandidates(10)}
	env := newTestEnv(t, index, catalog)
	env.orch.llm = llm
	sess := startSession(t, env.store)

	rec, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !rec.Degraded {
		t.Error("llm fallback run should be degraded")
	}
	if llm.calls() != 1 {
		t.Errorf("llm consulted %d times, want 1", llm.calls())
	}
	if catalog.calls() != 0 {
		t.Errorf("catalog consulted %d times, want 0 when llm succeeds", catalog.calls())
	}
}

func TestGenerateEmptyCandidatesScoresZeroDegraded(t *testing.T) {
	index := &stubSearcher{err: faults.Unavailable("index down", nil)}
	catalog := &stubSearcher{} // empty result, no error
	env := newTestEnv(t, index, catalog)
	sess := startSession(t, env.store)

	rec, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !rec.Degraded || !rec.Scores.Degraded {
		t.Error("empty result should be degraded")
	}
	if rec.Scores.Overall != 0 {
		t.Errorf("overall = %d, want 0 with no candidates", rec.Scores.Overall)
	}
	if len(rec.Items) != 0 {
		t.Errorf("got %d items, want 0", len(rec.Items))
	}
	if rec.Moment.Text == "" {
		t.Error("moment summary should still be produced")
	}
}

func TestGenerateExpiredSession(t *testing.T) {
	env := newTestEnv(t, &stubSearcher{candidates: sampleCandidates(10)}, &stubSearcher{})

	_, err := env.orch.Generate(context.Background(), "no-such-session")
	if !faults.IsCode(err, faults.CodeSessionExpired) {
		t.Fatalf("error code = %v, want session expired", faults.CodeOf(err))
	}
}

func TestGenerateEmitsEvent(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(10)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)

	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	events := env.emitter.byType(analytics.EventRecommendations)
	if len(events) != 1 {
		t.Fatalf("got %d recommendation events, want 1", len(events))
	}
	if events[0].SessionID != sess.ID {
		t.Errorf("event session = %q, want %q", events[0].SessionID, sess.ID)
	}
}

func TestRefineExcludesRatedItemsOnRerun(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(20)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)

	first, err := env.orch.Generate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	ratedID := first.Items[0].ID

	result, err := env.orch.Refine(context.Background(), sess.ID, []models.ItemFeedback{
		{ItemID: ratedID, Reaction: models.ReactionDislike},
	}, "")
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	for _, item := range result.Recommendation.Items {
		if item.ID == ratedID {
			t.Errorf("rated item %s reappeared after refinement", ratedID)
		}
	}
	if result.Explanation == "" {
		t.Error("refinement should carry an explanation")
	}

	stored, err := env.store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.Refinements) != 1 {
		t.Errorf("got %d refinement records, want 1", len(stored.Refinements))
	}
}

func TestRefineRequiresRecommendations(t *testing.T) {
	env := newTestEnv(t, &stubSearcher{candidates: sampleCandidates(10)}, &stubSearcher{})
	sess := startSession(t, env.store)

	_, err := env.orch.Refine(context.Background(), sess.ID, nil, refine.ActionTryDifferent)
	if !faults.IsCode(err, faults.CodeValidation) {
		t.Fatalf("error code = %v, want validation", faults.CodeOf(err))
	}
}

func TestRefineRejectsUnknownReaction(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(10)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)
	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err := env.orch.Refine(context.Background(), sess.ID, []models.ItemFeedback{
		{ItemID: "mv-000", Reaction: "meh"},
	}, "")
	if !faults.IsCode(err, faults.CodeValidation) {
		t.Fatalf("error code = %v, want validation", faults.CodeOf(err))
	}
}

func TestQuickAdjustLighterAppendsSuffix(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(20)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)
	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	result, err := env.orch.QuickAdjust(context.Background(), sess.ID, "lighter")
	if err != nil {
		t.Fatalf("QuickAdjust() error = %v", err)
	}
	if result.Adjustment != "lighter" {
		t.Errorf("adjustment = %q, want lighter", result.Adjustment)
	}
	if len(result.Recommendation.Items) == 0 {
		t.Error("quick adjust produced no items")
	}

	stored, err := env.store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.QuerySuffixes) != 1 {
		t.Fatalf("got %d query suffixes, want 1", len(stored.QuerySuffixes))
	}
}

func TestQuickAdjustShorterTightensRuntime(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(20)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)
	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := env.orch.QuickAdjust(context.Background(), sess.ID, "shorter"); err != nil {
		t.Fatalf("QuickAdjust() error = %v", err)
	}
	q := index.lastQuery()
	if q.Filters.MaxRuntime == 0 || q.Filters.MaxRuntime > 100 {
		t.Errorf("maxRuntime = %d, want at most 100 after shorter", q.Filters.MaxRuntime)
	}
}

func TestQuickAdjustUnknownName(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(10)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)
	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err := env.orch.QuickAdjust(context.Background(), sess.ID, "noisier")
	if !faults.IsCode(err, faults.CodeValidation) {
		t.Fatalf("error code = %v, want validation", faults.CodeOf(err))
	}

	stored, _ := env.store.Get(context.Background(), sess.ID)
	if len(stored.QuerySuffixes) != 0 {
		t.Error("unknown adjustment must not touch the session")
	}
}

func TestRefinementsStack(t *testing.T) {
	index := &stubSearcher{candidates: sampleCandidates(25)}
	env := newTestEnv(t, index, &stubSearcher{})
	sess := startSession(t, env.store)
	if _, err := env.orch.Generate(context.Background(), sess.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := env.orch.QuickAdjust(context.Background(), sess.ID, "lighter"); err != nil {
		t.Fatalf("first adjust: %v", err)
	}
	if _, err := env.orch.QuickAdjust(context.Background(), sess.ID, "weirder"); err != nil {
		t.Fatalf("second adjust: %v", err)
	}

	stored, err := env.store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.QuerySuffixes) != 2 {
		t.Fatalf("got %d suffixes, want 2 stacked", len(stored.QuerySuffixes))
	}
	q := index.lastQuery()
	for _, suffix := range stored.QuerySuffixes {
		if !strings.Contains(q.Text, suffix) {
			t.Errorf("query %q missing stacked suffix %q", q.Text, suffix)
		}
	}
}
