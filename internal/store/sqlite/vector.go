// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func init() {
	sqlite_vec.Auto()
}

// Compile-time interface check.
var _ store.VectorStore = (*VectorStore)(nil)

// VectorStore implements store.VectorStore backed by SQLite with sqlite-vec.
// The vec0 table uses cosine distance so similarity to a query embedding is
// 1 - distance.
type VectorStore struct {
	db         *sql.DB
	dimensions int
}

// NewVectorStore opens (or creates) a SQLite database at dbPath and
// initialises the vec0 virtual table.
func NewVectorStore(dbPath string, dimensions int) (*VectorStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "pinging sqlite db: %w", err)
	}

	if err := migrateVector(db, dimensions); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "migrating vector table: %w", err)
	}

	return &VectorStore{db: db, dimensions: dimensions}, nil
}

func migrateVector(db *sql.DB, dimensions int) error {
	ddl := fmt.Sprintf(
		`CREATE VIRTUAL TABLE IF NOT EXISTS component_vectors USING vec0(id TEXT PRIMARY KEY, embedding float[%d] distance_metric=cosine)`,
		dimensions,
	)
	_, err := db.Exec(ddl)
	return err
}

// Store inserts or replaces the embedding for a component ID.
func (v *VectorStore) Store(ctx context.Context, id string, embedding []float32) error {
	if len(embedding) != v.dimensions {
		return cotserr.New(cotserr.CodeStoreVectorDimMismatch, "embedding dimension mismatch",
			cotserr.FieldComponentID(id),
			cotserr.Field("want", v.dimensions),
			cotserr.Field("got", len(embedding)))
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "serializing embedding: %w", err)
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// vec0 does not support ON CONFLICT; delete first for upsert.
	if _, err := tx.ExecContext(ctx, `DELETE FROM component_vectors WHERE id = ?`, id); err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "deleting existing vector %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO component_vectors(id, embedding) VALUES (?, ?)`, id, blob); err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "inserting vector %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "committing vector store: %w", err)
	}
	return nil
}

// Search performs a k-nearest-neighbor search, closest first.
func (v *VectorStore) Search(ctx context.Context, query []float32, k int) ([]store.VectorResult, error) {
	if len(query) != v.dimensions {
		return nil, cotserr.New(cotserr.CodeStoreVectorDimMismatch, "query dimension mismatch",
			cotserr.Field("want", v.dimensions),
			cotserr.Field("got", len(query)))
	}

	blob, err := sqlite_vec.SerializeFloat32(query)
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "serializing query vector: %w", err)
	}

	const q = `SELECT id, distance
FROM component_vectors
WHERE embedding MATCH ? AND k = ?
ORDER BY distance`

	rows, err := v.db.QueryContext(ctx, q, blob, k)
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "searching vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []store.VectorResult
	for rows.Next() {
		var r store.VectorResult
		if err := rows.Scan(&r.ID, &r.Distance); err != nil {
			return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "scanning vector result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "iterating vector results: %w", err)
	}

	return results, nil
}

func (v *VectorStore) Count(ctx context.Context) (int, error) {
	var count int
	err := v.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM component_vectors`).Scan(&count)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreVectorFailure, "counting vectors: %w", err)
	}
	return count, nil
}

// Clear removes every vector ahead of a full rebuild.
func (v *VectorStore) Clear(ctx context.Context) error {
	if _, err := v.db.ExecContext(ctx, `DELETE FROM component_vectors`); err != nil {
		return cotserr.Errorf(cotserr.CodeStoreVectorFailure, "clearing vectors: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (v *VectorStore) Close() error {
	return v.db.Close()
}
