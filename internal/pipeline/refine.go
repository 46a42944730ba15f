// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package pipeline

import (
	"context"
	"sort"

	"github.com/tomtom215/cinemoment/internal/analytics"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/refine"
)

// RefineResult is a refinement run: the classification plus the new list.
type RefineResult struct {
	Recommendation *Recommendation
	Strategy       refine.Strategy
	Confidence     float64
	Explanation    string
	Adjustments    []string
}

// Refine classifies the feedback, layers the resulting delta onto the
// session, and re-runs the pipeline. Refinements stack: each one builds on
// the session state the previous ones left behind.
func (o *Orchestrator) Refine(ctx context.Context, sessionID string, feedback []models.ItemFeedback, action refine.Action) (*RefineResult, error) {
	sess, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.LastRecommendations) == 0 {
		return nil, faults.Validation("nothing to refine: no recommendations have been generated for this session")
	}
	for _, fb := range feedback {
		if !fb.Reaction.Valid() {
			return nil, faults.Validation("unknown reaction %q", fb.Reaction)
		}
	}

	result := o.refiner.Classify(sess, feedback, action)
	adjustments := deltaSummary(result.Delta)
	appliedAt := o.now().UTC()

	if _, err := o.sessions.Update(ctx, sessionID, func(s *models.Session) error {
		applyDelta(s, result.Delta)
		s.Refinements = append(s.Refinements, models.RefinementRecord{
			Strategy:    string(result.Strategy),
			Adjustments: adjustments,
			Confidence:  result.Confidence,
			AppliedAt:   appliedAt,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	rec, err := o.Generate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	o.emit(analytics.Event{
		Type:      analytics.EventRefinementApplied,
		SessionID: sessionID,
		Domain:    sess.Domain,
		Payload: map[string]any{
			"strategy":   string(result.Strategy),
			"confidence": result.Confidence,
			"feedback":   len(feedback),
		},
	})

	return &RefineResult{
		Recommendation: rec,
		Strategy:       result.Strategy,
		Confidence:     result.Confidence,
		Explanation:    result.Explanation,
		Adjustments:    adjustments,
	}, nil
}

// AdjustResult is a quick-adjust run.
type AdjustResult struct {
	Recommendation *Recommendation
	Adjustment     string
	Applied        string
}

// QuickAdjust applies a named adjustment delta and re-runs the pipeline.
// Unknown names fail validation before the session is touched.
func (o *Orchestrator) QuickAdjust(ctx context.Context, sessionID, name string) (*AdjustResult, error) {
	adj, err := refine.QuickAdjust(name)
	if err != nil {
		return nil, err
	}

	sess, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.LastRecommendations) == 0 {
		return nil, faults.Validation("nothing to adjust: no recommendations have been generated for this session")
	}

	if _, err := o.sessions.Update(ctx, sessionID, func(s *models.Session) error {
		if adj.Suffix != "" {
			s.QuerySuffixes = append(s.QuerySuffixes, adj.Suffix)
		}
		s.FilterOverlay = s.FilterOverlay.Merge(adj.Overlay)
		return nil
	}); err != nil {
		return nil, err
	}

	rec, err := o.Generate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	o.emit(analytics.Event{
		Type:      analytics.EventQuickAdjustApplied,
		SessionID: sessionID,
		Domain:    sess.Domain,
		Payload:   map[string]any{"adjustment": name},
	})

	return &AdjustResult{
		Recommendation: rec,
		Adjustment:     name,
		Applied:        adj.Applied,
	}, nil
}

// applyDelta folds a refinement delta into the session's layered state.
func applyDelta(s *models.Session, d refine.Delta) {
	if d.QuerySuffix != "" {
		s.QuerySuffixes = append(s.QuerySuffixes, d.QuerySuffix)
	}
	s.FilterOverlay = s.FilterOverlay.Merge(d.FilterOverlay)
	if len(d.TraitBoosts) > 0 {
		if s.TraitBoosts == nil {
			s.TraitBoosts = make(map[string]float64, len(d.TraitBoosts))
		}
		for trait, boost := range d.TraitBoosts {
			s.TraitBoosts[trait] += boost
		}
	}
	s.ExcludeItemIDs = append(s.ExcludeItemIDs, d.ExcludeItemIDs...)
}

// deltaSummary renders the delta as short strings for the refinement record
// and the API response.
func deltaSummary(d refine.Delta) []string {
	var out []string
	if d.QuerySuffix != "" {
		out = append(out, "query: "+d.QuerySuffix)
	}
	traits := make([]string, 0, len(d.TraitBoosts))
	for trait := range d.TraitBoosts {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	for _, trait := range traits {
		out = append(out, "trait: "+trait)
	}
	if len(d.FilterOverlay.ExcludeGenres) > 0 {
		out = append(out, "excluded genres")
	}
	if len(d.FilterOverlay.IncludeGenres) > 0 {
		out = append(out, "focused genres")
	}
	if len(d.ExcludeItemIDs) > 0 {
		out = append(out, "excluded rated items")
	}
	return out
}
