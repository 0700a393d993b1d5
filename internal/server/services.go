// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package server

import (
	"context"
	"io"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/recommend"
)

// RecommendService is the slice of the recommendation pipeline the HTTP
// layer depends on.
type RecommendService interface {
	Recommend(ctx context.Context, query string, topK int) ([]catalog.Component, error)
	Explain(ctx context.Context, componentID, query string) (string, error)
	Import(ctx context.Context, r io.Reader) (catalog.ImportReport, error)
	Rebuild(ctx context.Context) (int, error)
	Status(ctx context.Context) (recommend.Status, error)
	ExplainConfigured() bool
}
