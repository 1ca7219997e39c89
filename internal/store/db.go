// Package store implements the two local persistence surfaces: a document
// store holding whole serialized collections under named keys, and a blob
// store holding entry media keyed by entry id. Both live in one SQLite
// database; an open failure here is fatal to the data layer and is surfaced
// once at startup, never retried per call.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/latted-app/latted/internal/dbx"
	"github.com/latted-app/latted/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store bundles the document and blob repositories backed by one database.
type Store struct {
	db        *sql.DB
	Documents *Documents
	Blobs     *Blobs
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the local database at dsn and applies
// migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &Store{
		db:        db,
		Documents: NewDocuments(db),
		Blobs:     NewBlobs(db),
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// WithTx runs fn with transactional views of both repositories, committing
// on success and rolling back on error. Used where blob and metadata writes
// must land together.
func (s *Store) WithTx(ctx context.Context, fn func(docs *Documents, blobs *Blobs) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(NewDocuments(tx), NewBlobs(tx))
	})
}

// DB exposes the handle for tests that assert on raw rows.
func (s *Store) DB() *sql.DB { return s.db }
