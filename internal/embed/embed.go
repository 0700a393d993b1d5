// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package embed turns component text and search queries into embedding
// vectors via a configurable provider.
package embed

import (
	"context"

	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Embedder produces embedding vectors for text.
type Embedder interface {
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	Name() string
}

// New creates the Embedder selected by cfg.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		return NewGoogle(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg)
	default:
		return nil, cotserr.Errorf(cotserr.CodeProviderUnknown, "unknown embedding provider %q", cfg.Provider)
	}
}
