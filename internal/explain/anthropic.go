// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package explain

import (
	"context"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// explanationMaxTokens bounds the generated explanation length.
const explanationMaxTokens = 1024

// Anthropic generates explanations with the Anthropic Messages API.
type Anthropic struct {
	client anthropicsdk.Client
	model  string
}

// NewAnthropic creates an Anthropic explainer. Returns an error if the API
// key is missing.
func NewAnthropic(cfg config.ExplainConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, cotserr.New(cotserr.CodeProviderRequestInvalid, "anthropic: missing explain api_key")
	}

	client := anthropicsdk.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Anthropic{client: client, model: cfg.Model}, nil
}

func (a *Anthropic) Name() string { return config.ProviderAnthropic }

func (a *Anthropic) Explain(ctx context.Context, c catalog.Component, query string) (string, error) {
	prompt := BuildPrompt(c, query)

	msg, err := a.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(a.model),
		MaxTokens: explanationMaxTokens,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", cotserr.Wrap(err, cotserr.CodeExplainUpstreamFailure, "anthropic: generating explanation",
			cotserr.FieldComponentID(c.ID))
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", cotserr.New(cotserr.CodeExplainResponseEmpty, "anthropic: empty explanation response",
			cotserr.FieldComponentID(c.ID))
	}

	return text, nil
}
