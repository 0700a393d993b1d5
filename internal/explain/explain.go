// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package explain generates natural-language explanations for why a
// component was recommended for a query.
package explain

import (
	"context"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Explainer generates an explanation for a recommended component.
type Explainer interface {
	Explain(ctx context.Context, c catalog.Component, query string) (string, error)

	Name() string
}

// New creates the Explainer selected by cfg. Returns (nil, nil) when the
// provider is "none"; callers treat a nil Explainer as unconfigured.
func New(ctx context.Context, cfg config.ExplainConfig) (Explainer, error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderGoogle:
		return NewGoogle(ctx, cfg)
	case config.ProviderAnthropic:
		return NewAnthropic(cfg)
	default:
		return nil, cotserr.Errorf(cotserr.CodeProviderUnknown, "unknown explain provider %q", cfg.Provider)
	}
}
