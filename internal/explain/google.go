// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package explain

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Google generates explanations with the Gemini API.
type Google struct {
	client *genai.Client
	model  string
}

// NewGoogle creates a Google explainer. Returns an error if the API key is
// missing.
func NewGoogle(ctx context.Context, cfg config.ExplainConfig) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, cotserr.New(cotserr.CodeProviderRequestInvalid, "google: missing explain api_key")
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

func (g *Google) Explain(ctx context.Context, c catalog.Component, query string) (string, error) {
	prompt := BuildPrompt(c, query)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", cotserr.Wrap(err, cotserr.CodeExplainUpstreamFailure, "google: generating explanation",
			cotserr.FieldComponentID(c.ID))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", cotserr.New(cotserr.CodeExplainResponseEmpty, "google: empty explanation response",
			cotserr.FieldComponentID(c.ID))
	}

	return text, nil
}
