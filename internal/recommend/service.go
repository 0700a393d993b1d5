// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package recommend implements the semantic search pipeline: embed the
// query, find nearest components in the vector index, hydrate them from
// the catalog, and score the results.
package recommend

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/embed"
	"github.com/cotsense/cotsense/internal/explain"
	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// rebuildPageSize is how many components are loaded per page during a full
// index rebuild.
const rebuildPageSize = 500

// Service runs recommendation searches and explanation requests against
// the catalog, vector index, and configured providers.
type Service struct {
	stores    *store.Stores
	embedder  embed.Embedder
	explainer explain.Explainer
	logger    *slog.Logger

	defaultTopK int
	maxTopK     int
}

// Options configures a Service.
type Options struct {
	Stores    *store.Stores
	Embedder  embed.Embedder
	Explainer explain.Explainer // nil when AI explanations are not configured
	Logger    *slog.Logger

	DefaultTopK int
	MaxTopK     int
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		stores:      opts.Stores,
		embedder:    opts.Embedder,
		explainer:   opts.Explainer,
		logger:      logger,
		defaultTopK: opts.DefaultTopK,
		maxTopK:     opts.MaxTopK,
	}
}

// ExplainConfigured reports whether an AI explanation provider is available.
func (s *Service) ExplainConfigured() bool {
	return s.explainer != nil
}

// Recommend returns the topK best matching components for query, scored and
// ordered by total score descending. topK <= 0 uses the configured default;
// values above the configured maximum are capped.
func (s *Service) Recommend(ctx context.Context, query string, topK int) ([]catalog.Component, error) {
	started := time.Now()

	cleaned := catalog.CleanQuery(query)
	if cleaned == "" {
		return nil, cotserr.New(cotserr.CodeSearchQueryInvalid, "query must not be empty")
	}

	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		s.logger.Warn("top_k above maximum, capping", "requested", topK, "max", s.maxTopK)
		topK = s.maxTopK
	}

	indexed, err := s.stores.Vectors.Count(ctx)
	if err != nil {
		return nil, cotserr.Wrapf(err, cotserr.CodeSearchLookupFailure, "checking vector index")
	}
	if indexed == 0 {
		return nil, cotserr.New(cotserr.CodeSearchIndexNotLoaded, "vector index is empty, run a reindex first")
	}

	queryVec, err := s.embedder.Embed(ctx, cleaned)
	if err != nil {
		return nil, cotserr.Wrap(err, cotserr.CodeSearchEmbedFailure, "embedding query",
			cotserr.FieldQuery(cleaned))
	}

	hits, err := s.stores.Vectors.Search(ctx, queryVec, topK)
	if err != nil {
		return nil, cotserr.Wrap(err, cotserr.CodeSearchLookupFailure, "searching vector index",
			cotserr.FieldQuery(cleaned))
	}
	if len(hits) == 0 {
		return []catalog.Component{}, nil
	}

	ids := make([]string, len(hits))
	distanceByID := make(map[string]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		distanceByID[h.ID] = h.Distance
	}

	components, err := s.stores.Components.GetMany(ctx, ids)
	if err != nil {
		return nil, cotserr.Wrap(err, cotserr.CodeSearchLookupFailure, "loading components",
			cotserr.FieldQuery(cleaned))
	}

	// Index entries without a catalog row mean the index is stale; drop
	// them and keep going.
	if len(components) < len(hits) {
		s.logger.Warn("vector index references missing components",
			"indexed", len(hits), "found", len(components))
	}

	for i := range components {
		// Cosine distance d maps to similarity 1-d.
		similarity := 1 - distanceByID[components[i].ID]
		components[i].SpecMatch = catalog.Ptr(SpecMatchScore(similarity))
		components[i].TotalScore = catalog.Ptr(TotalScore(similarity, components[i]))
	}

	results := catalog.SortComponents(components, catalog.SortTotalScore, true)

	if err := s.stores.SearchLog.Record(ctx, store.SearchLogEntry{
		Query:       cleaned,
		ResultCount: len(results),
		DurationMS:  float64(time.Since(started).Microseconds()) / 1000,
	}); err != nil {
		s.logger.Warn("failed to record search", "error", err)
	}

	return results, nil
}

// Explain generates an explanation for a recommended component. When the
// configured provider fails upstream, a locally synthesized fallback is
// returned instead of an error; an unconfigured provider or an unknown
// component ID is an error.
func (s *Service) Explain(ctx context.Context, componentID, query string) (string, error) {
	if s.explainer == nil {
		return "", cotserr.New(cotserr.CodeExplainNotConfigured,
			"AI explanation service is not configured")
	}

	component, err := s.stores.Components.Get(ctx, componentID)
	if err != nil {
		if cotserr.IsNotFound(err) {
			return "", cotserr.Wrap(err, cotserr.CodeExplainComponentMissing, "component not found",
				cotserr.FieldComponentID(componentID))
		}
		return "", cotserr.Wrap(err, cotserr.CodeSearchLookupFailure, "loading component",
			cotserr.FieldComponentID(componentID))
	}

	text, err := s.explainer.Explain(ctx, *component, query)
	if err != nil {
		s.logger.Warn("explanation provider failed, using fallback",
			"component_id", componentID, "provider", s.explainer.Name(), "error", err)
		return catalog.FallbackExplanation(*component, query), nil
	}

	return text, nil
}

// Import parses a component CSV, upserts the rows into the catalog, and
// returns the import report. The vector index is not touched; callers run
// Rebuild afterwards to pick up the new rows.
func (s *Service) Import(ctx context.Context, r io.Reader) (catalog.ImportReport, error) {
	components, report, err := catalog.ParseCSV(r)
	if err != nil {
		return catalog.ImportReport{}, err
	}

	if _, err := s.stores.Components.BulkUpsert(ctx, components); err != nil {
		return catalog.ImportReport{}, err
	}

	s.logger.Info("catalog import complete",
		"parsed", report.Parsed, "imported", report.Imported, "skipped", report.Skipped)

	return report, nil
}

// Rebuild re-embeds every component and replaces the vector index. Returns
// the number of components indexed.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	started := time.Now()

	if err := s.stores.Vectors.Clear(ctx); err != nil {
		return 0, cotserr.Wrapf(err, cotserr.CodeSearchRebuildFailure, "clearing vector index")
	}

	indexed := 0
	for offset := 0; ; offset += rebuildPageSize {
		page, err := s.stores.Components.List(ctx, offset, rebuildPageSize)
		if err != nil {
			return indexed, cotserr.Wrapf(err, cotserr.CodeSearchRebuildFailure, "listing components")
		}
		if len(page) == 0 {
			break
		}

		for _, c := range page {
			vec, err := s.embedder.Embed(ctx, IndexText(c))
			if err != nil {
				return indexed, cotserr.Wrap(err, cotserr.CodeSearchRebuildFailure, "embedding component",
					cotserr.FieldComponentID(c.ID))
			}

			if err := s.stores.Vectors.Store(ctx, c.ID, vec); err != nil {
				return indexed, cotserr.Wrap(err, cotserr.CodeSearchRebuildFailure, "storing vector",
					cotserr.FieldComponentID(c.ID))
			}
			indexed++
		}
	}

	s.logger.Info("vector index rebuilt",
		"components", indexed, "duration", time.Since(started).Round(time.Millisecond))

	return indexed, nil
}

// Status summarizes store health for the status endpoint.
type Status struct {
	Components    int  `json:"components"`
	Vectors       int  `json:"vectors"`
	Searches      int  `json:"searches"`
	SearchesToday int  `json:"searches_today"`
	IndexInSync   bool `json:"index_in_sync"`
}

// Status reports catalog, index, and search-log counts.
func (s *Service) Status(ctx context.Context) (Status, error) {
	components, err := s.stores.Components.Count(ctx)
	if err != nil {
		return Status{}, err
	}
	vectors, err := s.stores.Vectors.Count(ctx)
	if err != nil {
		return Status{}, err
	}
	searches, err := s.stores.SearchLog.Count(ctx)
	if err != nil {
		return Status{}, err
	}
	today, err := s.stores.SearchLog.CountSince(ctx, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return Status{}, err
	}

	return Status{
		Components:    components,
		Vectors:       vectors,
		Searches:      searches,
		SearchesToday: today,
		IndexInSync:   components == vectors,
	}, nil
}
