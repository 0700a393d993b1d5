// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package store defines the persistence interfaces for the component
// catalog, the vector index, and the search log.
package store

import (
	"context"
	"time"

	"github.com/cotsense/cotsense/internal/catalog"
)

// ComponentStore manages the component catalog.
type ComponentStore interface {
	// Get returns a single component. Missing IDs return
	// CodeStoreComponentNotFound.
	Get(ctx context.Context, id string) (*catalog.Component, error)

	// GetMany returns the components for ids, preserving the requested
	// order. IDs absent from the catalog are silently dropped; callers
	// compare lengths when absence matters.
	GetMany(ctx context.Context, ids []string) ([]catalog.Component, error)

	// List pages through the catalog ordered by part number.
	List(ctx context.Context, offset, limit int) ([]catalog.Component, error)

	Count(ctx context.Context) (int, error)

	// BulkUpsert inserts or replaces components by ID and returns the
	// number written.
	BulkUpsert(ctx context.Context, components []catalog.Component) (int, error)

	Close() error
}

// VectorResult is one nearest-neighbor hit. Distance is cosine distance,
// lower is more similar.
type VectorResult struct {
	ID       string
	Distance float64
}

// VectorStore manages the embedding index used for semantic search.
type VectorStore interface {
	// Store inserts or replaces the embedding for a component ID.
	Store(ctx context.Context, id string, embedding []float32) error

	// Search returns the k nearest neighbors of query, closest first.
	Search(ctx context.Context, query []float32, k int) ([]VectorResult, error)

	Count(ctx context.Context) (int, error)

	// Clear removes every vector, used before a full index rebuild.
	Clear(ctx context.Context) error

	Close() error
}

// SearchLogEntry records one recommendation request for status reporting.
type SearchLogEntry struct {
	ID          string
	Query       string
	ResultCount int
	DurationMS  float64
	CreatedAt   time.Time
}

// SearchLogStore persists the search history.
type SearchLogStore interface {
	Record(ctx context.Context, entry SearchLogEntry) error

	Count(ctx context.Context) (int, error)

	// CountSince counts searches recorded at or after the given time.
	CountSince(ctx context.Context, since time.Time) (int, error)

	Close() error
}
