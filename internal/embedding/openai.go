// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider embeds query text through the OpenAI embeddings API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the given key and model. An empty
// model selects text-embedding-3-small.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Name identifies the provider in logs and analytics.
func (p *OpenAIProvider) Name() string { return "openai" }

// Embed requests a Dimensions-wide embedding for the text.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) (Vector, error) {
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model:      openai.EmbeddingModel(p.model),
		Dimensions: openai.Int(Dimensions),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embed: empty response")
	}

	raw := resp.Data[0].Embedding
	if len(raw) != Dimensions {
		return nil, fmt.Errorf("openai embed: got %d dimensions, want %d", len(raw), Dimensions)
	}

	v := make(Vector, Dimensions)
	for i, f := range raw {
		v[i] = float32(f)
	}
	return v, nil
}
