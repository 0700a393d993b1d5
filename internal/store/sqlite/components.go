// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package sqlite implements the store interfaces on SQLite, with the
// vector index held in a sqlite-vec virtual table.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/store"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Compile-time interface check.
var _ store.ComponentStore = (*ComponentStore)(nil)

// ComponentStore implements store.ComponentStore backed by SQLite.
type ComponentStore struct {
	db *sql.DB
}

// NewComponentStore opens (or creates) a SQLite database at dbPath and
// initialises the components table.
func NewComponentStore(dbPath string) (*ComponentStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "pinging sqlite db: %w", err)
	}

	if err := migrateComponents(db); err != nil {
		_ = db.Close()
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "migrating components table: %w", err)
	}

	return &ComponentStore{db: db}, nil
}

func migrateComponents(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS components (
	id             TEXT PRIMARY KEY,
	part_number    TEXT NOT NULL,
	manufacturer   TEXT NOT NULL,
	category       TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	specifications TEXT NOT NULL DEFAULT '',
	price          REAL,
	stock          TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_components_part_mfr ON components(part_number, manufacturer);
CREATE INDEX IF NOT EXISTS idx_components_category ON components(category);
`
	_, err := db.Exec(ddl)
	return err
}

const componentColumns = `id, part_number, manufacturer, category, description, specifications, price, stock`

func scanComponent(row interface{ Scan(...any) error }) (catalog.Component, error) {
	var (
		c     catalog.Component
		price sql.NullFloat64
		stock sql.NullString
	)

	err := row.Scan(&c.ID, &c.PartNumber, &c.Manufacturer, &c.Category,
		&c.Description, &c.Specifications, &price, &stock)
	if err != nil {
		return catalog.Component{}, err
	}

	if price.Valid {
		c.Price = catalog.Ptr(price.Float64)
	}
	if stock.Valid && stock.String != "" {
		c.Stock = catalog.Ptr(stock.String)
	}

	return c, nil
}

func (s *ComponentStore) Get(ctx context.Context, id string) (*catalog.Component, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+componentColumns+` FROM components WHERE id = ?`, id)

	c, err := scanComponent(row)
	if err == sql.ErrNoRows {
		return nil, cotserr.New(cotserr.CodeStoreComponentNotFound, "component not found",
			cotserr.FieldComponentID(id))
	}
	if err != nil {
		return nil, cotserr.Wrap(err, cotserr.CodeStoreDatabaseFailure, "querying component",
			cotserr.FieldComponentID(id))
	}

	return &c, nil
}

func (s *ComponentStore) GetMany(ctx context.Context, ids []string) ([]catalog.Component, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+componentColumns+` FROM components WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "querying components: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[string]catalog.Component, len(ids))
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "scanning component: %w", err)
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "iterating components: %w", err)
	}

	// Preserve the order the caller asked for.
	out := make([]catalog.Component, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *ComponentStore) List(ctx context.Context, offset, limit int) ([]catalog.Component, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+componentColumns+` FROM components ORDER BY part_number LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "listing components: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "scanning component: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "iterating components: %w", err)
	}

	return out, nil
}

func (s *ComponentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components`).Scan(&count)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "counting components: %w", err)
	}
	return count, nil
}

func (s *ComponentStore) BulkUpsert(ctx context.Context, components []catalog.Component) (int, error) {
	if len(components) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO components (` + componentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	part_number = excluded.part_number,
	manufacturer = excluded.manufacturer,
	category = excluded.category,
	description = excluded.description,
	specifications = excluded.specifications,
	price = excluded.price,
	stock = excluded.stock`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "preparing upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	written := 0
	for _, c := range components {
		if c.ID == "" || c.PartNumber == "" || c.Manufacturer == "" || c.Category == "" {
			return written, cotserr.New(cotserr.CodeStoreComponentInvalid,
				"component missing required fields", cotserr.FieldComponentID(c.ID))
		}

		var price sql.NullFloat64
		if c.Price != nil {
			price = sql.NullFloat64{Float64: *c.Price, Valid: true}
		}
		var stock sql.NullString
		if c.Stock != nil {
			stock = sql.NullString{String: *c.Stock, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, c.ID, c.PartNumber, c.Manufacturer, c.Category,
			c.Description, c.Specifications, price, stock); err != nil {
			return written, cotserr.Wrap(err, cotserr.CodeStoreDatabaseFailure, "upserting component",
				cotserr.FieldComponentID(c.ID))
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, cotserr.Errorf(cotserr.CodeStoreDatabaseFailure, "committing upsert: %w", err)
	}

	return written, nil
}

// Close closes the underlying database connection.
func (s *ComponentStore) Close() error {
	return s.db.Close()
}
