// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Compile-time interface check.
var _ store.SearchLogStore = (*SearchLogStore)(nil)

// searchLogTimeFormat is fixed width, unlike RFC3339Nano which trims
// trailing zeros, so lexical order on created_at equals chronological order.
const searchLogTimeFormat = "2006-01-02T15:04:05.000000000Z"

// SearchLogStore implements store.SearchLogStore backed by SQLite.
type SearchLogStore struct {
	db *sql.DB
}

// NewSearchLogStore opens (or creates) a SQLite database at dbPath and
// initialises the search log table.
func NewSearchLogStore(dbPath string) (*SearchLogStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "pinging sqlite db: %w", err)
	}

	if err := migrateSearchLog(db); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "migrating search log table: %w", err)
	}

	return &SearchLogStore{db: db}, nil
}

func migrateSearchLog(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS search_log (
	id           TEXT PRIMARY KEY,
	query        TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	duration_ms  REAL NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_log_created ON search_log(created_at);
`
	_, err := db.Exec(ddl)
	return err
}

func (s *SearchLogStore) Record(ctx context.Context, entry store.SearchLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const q = `INSERT INTO search_log (id, query, result_count, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q, entry.ID, entry.Query, entry.ResultCount,
		entry.DurationMS, entry.CreatedAt.UTC().Format(searchLogTimeFormat))
	if err != nil {
		return cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "recording search: %w", err)
	}
	return nil
}

func (s *SearchLogStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_log`).Scan(&count)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "counting searches: %w", err)
	}
	return count, nil
}

func (s *SearchLogStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM search_log WHERE created_at >= ?`,
		since.UTC().Format(searchLogTimeFormat)).Scan(&count)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "counting recent searches: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SearchLogStore) Close() error {
	return s.db.Close()
}
