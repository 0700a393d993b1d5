// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package embed

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// OpenAI embeds text with the OpenAI embeddings API.
type OpenAI struct {
	client openaisdk.Client
	model  string
}

// NewOpenAI creates an OpenAI embedder. Returns an error if the API key is
// missing. BaseURL is optional, useful for testing against a mock server.
func NewOpenAI(cfg config.EmbeddingConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, cotserr.New(cotserr.CodeProviderRequestInvalid, "openai: missing embedding api_key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openaisdk.NewClient(opts...)
	return &OpenAI{client: client, model: cfg.Model}, nil
}

func (o *OpenAI) Name() string { return config.ProviderOpenAI }

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input: openaisdk.EmbeddingNewParamsInputUnion{OfString: param.NewOpt(text)},
		Model: openaisdk.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, cotserr.Wrapf(err, cotserr.CodeProviderUpstreamFailure, "openai: embedding text")
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, cotserr.New(cotserr.CodeProviderUpstreamFailure, "openai: empty embedding response")
	}

	out := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		out[i] = float32(v)
	}
	return out, nil
}
