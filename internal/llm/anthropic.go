// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package llm is the optional language-model retrieval fallback: when the
// vector index and the embedded catalog both come up short, a Claude model
// is asked for a structured candidate list. Config-gated; the pipeline
// works fully without it.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/models"
	"github.com/tomtom215/cinemoment/internal/retrieval"
)

// minItems is the smallest useful list the model may return.
const minItems = 8

// Recommender asks a Claude model for candidates. It satisfies
// retrieval.Searcher so the orchestrator can chain it behind the catalog
// fallback.
type Recommender struct {
	client  sdk.Client
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRecommender builds the fallback from config.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(cfg config.LLMConfig, logger zerolog.Logger) *Recommender {
	model := cfg.Model
	if model == "" {
		model = string(sdk.ModelClaudeSonnet4_5_20250929)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &Recommender{
		client:  sdk.NewClient(option.WithAPIKey(cfg.AnthropicKey)),
		model:   model,
		timeout: timeout,
		logger:  logger.With().Str("component", "llm").Logger(),
	}
}

// llmItem is the JSON shape the prompt asks for.
type llmItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	Rating     float64  `json:"rating"`
	Popularity float64  `json:"popularity"`
	VoteCount  int      `json:"voteCount"`
	Runtime    int      `json:"runtime"`
	Overview   string   `json:"overview"`
}

// Search asks the model for candidates matching the query text and filters.
func (r *Recommender) Search(ctx context.Context, q retrieval.Query) ([]models.Candidate, error) {
	llmCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	msg, err := r.client.Messages.New(llmCtx, sdk.MessageNewParams{
		MaxTokens: 2048,
		Model:     sdk.Model(r.model),
		System: []sdk.TextBlockParam{{
			Text: "You are a film and television recommendation engine. Respond with a JSON array only, no prose, no code fences.",
		}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(buildPrompt(q))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm fallback: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	items, err := parseItems(text)
	if err != nil {
		return nil, fmt.Errorf("llm fallback: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(items))
	for i, item := range items {
		candidates = append(candidates, models.Candidate{
			ID:             item.ID,
			Title:          item.Title,
			Year:           item.Year,
			Genres:         lowerAll(item.Genres),
			Rating:         item.Rating,
			Popularity:     item.Popularity,
			VoteCount:      item.VoteCount,
			RuntimeMinutes: item.Runtime,
			Overview:       item.Overview,
			Similarity:     0.6 - float64(i)*0.01,
		})
	}
	return candidates, nil
}

func buildPrompt(q retrieval.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommend at least %d titles in the %q domain matching: %s\n", minItems, q.Domain, q.Text)

	if !q.Filters.IsEmpty() {
		b.WriteString("Constraints:\n")
		f := q.Filters
		if f.MinYear > 0 {
			fmt.Fprintf(&b, "- released %d or later\n", f.MinYear)
		}
		if f.MaxYear > 0 {
			fmt.Fprintf(&b, "- released %d or earlier\n", f.MaxYear)
		}
		if f.MinRating > 0 {
			fmt.Fprintf(&b, "- rated at least %.1f/10\n", f.MinRating)
		}
		if f.MaxRuntime > 0 {
			fmt.Fprintf(&b, "- runtime at most %d minutes\n", f.MaxRuntime)
		}
		if f.MinRuntime > 0 {
			fmt.Fprintf(&b, "- runtime at least %d minutes\n", f.MinRuntime)
		}
		if len(f.IncludeGenres) > 0 {
			fmt.Fprintf(&b, "- genres among: %s\n", strings.Join(f.IncludeGenres, ", "))
		}
		if len(f.ExcludeGenres) > 0 {
			fmt.Fprintf(&b, "- avoid genres: %s\n", strings.Join(f.ExcludeGenres, ", "))
		}
	}

	b.WriteString(`Respond with a JSON array of objects with keys: id, title, year, genres, rating, popularity, voteCount, runtime, overview.`)
	return b.String()
}

// parseItems tolerates a code fence despite the instructions, then enforces
// the minimum list size.
func parseItems(text string) ([]llmItem, error) {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			text = text[start : end+1]
		}
	}

	var items []llmItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(items) < minItems {
		return nil, fmt.Errorf("model returned %d items, need at least %d", len(items), minItems)
	}
	return items, nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
