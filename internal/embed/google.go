// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package embed

import (
	"context"

	"google.golang.org/genai"

	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Google embeds text with the Gemini embedding API.
type Google struct {
	client *genai.Client
	model  string
}

// NewGoogle creates a Google embedder. Returns an error if the API key is
// missing.
func NewGoogle(ctx context.Context, cfg config.EmbeddingConfig) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, cotserr.New(cotserr.CodeProviderRequestInvalid, "google: missing embedding api_key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, cotserr.Wrapf(err, cotserr.CodeProviderUpstreamFailure, "google: creating client")
	}

	return &Google{client: client, model: cfg.Model}, nil
}

func (g *Google) Name() string { return config.ProviderGoogle }

func (g *Google) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, cotserr.Wrapf(err, cotserr.CodeProviderUpstreamFailure, "google: embedding text")
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, cotserr.New(cotserr.CodeProviderUpstreamFailure, "google: empty embedding response")
	}

	return resp.Embeddings[0].Values, nil
}
