// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package recommend_test

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// fakeComponentStore is an in-memory store.ComponentStore.
type fakeComponentStore struct {
	components map[string]catalog.Component
}

func newFakeComponentStore(components ...catalog.Component) *fakeComponentStore {
	m := make(map[string]catalog.Component, len(components))
	for _, c := range components {
		m[c.ID] = c
	}
	return &fakeComponentStore{components: m}
}

func (f *fakeComponentStore) Get(_ context.Context, id string) (*catalog.Component, error) {
	c, ok := f.components[id]
	if !ok {
		return nil, cotserr.New(cotserr.CodeStoreComponentNotFound, "component not found",
			cotserr.FieldComponentID(id))
	}
	return &c, nil
}

func (f *fakeComponentStore) GetMany(_ context.Context, ids []string) ([]catalog.Component, error) {
	var out []catalog.Component
	for _, id := range ids {
		if c, ok := f.components[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComponentStore) List(_ context.Context, offset, limit int) ([]catalog.Component, error) {
	ids := make([]string, 0, len(f.components))
	for id := range f.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []catalog.Component
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, f.components[ids[i]])
	}
	return out, nil
}

func (f *fakeComponentStore) Count(_ context.Context) (int, error) {
	return len(f.components), nil
}

func (f *fakeComponentStore) BulkUpsert(_ context.Context, components []catalog.Component) (int, error) {
	for _, c := range components {
		f.components[c.ID] = c
	}
	return len(components), nil
}

func (f *fakeComponentStore) Close() error { return nil }

// fakeVectorStore is an in-memory store.VectorStore using cosine distance.
type fakeVectorStore struct {
	vectors map[string][]float32
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{vectors: map[string][]float32{}}
}

func (f *fakeVectorStore) Store(_ context.Context, id string, embedding []float32) error {
	f.vectors[id] = embedding
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, query []float32, k int) ([]store.VectorResult, error) {
	var results []store.VectorResult
	for id, vec := range f.vectors {
		results = append(results, store.VectorResult{ID: id, Distance: cosineDistance(query, vec)})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (f *fakeVectorStore) Count(_ context.Context) (int, error) { return len(f.vectors), nil }

func (f *fakeVectorStore) Clear(_ context.Context) error {
	f.vectors = map[string][]float32{}
	return nil
}

func (f *fakeVectorStore) Close() error { return nil }

func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// fakeSearchLog is an in-memory store.SearchLogStore.
type fakeSearchLog struct {
	entries []store.SearchLogEntry
}

func (f *fakeSearchLog) Record(_ context.Context, entry store.SearchLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSearchLog) Count(_ context.Context) (int, error) { return len(f.entries), nil }

func (f *fakeSearchLog) CountSince(_ context.Context, since time.Time) (int, error) {
	count := 0
	for _, e := range f.entries {
		if !e.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeSearchLog) Close() error { return nil }

// fakeEmbedder maps known phrases to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Name() string { return "fake" }

// fakeExplainer returns a canned explanation or error.
type fakeExplainer struct {
	text string
	err  error
}

func (f *fakeExplainer) Explain(_ context.Context, c catalog.Component, query string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeExplainer) Name() string { return "fake" }
