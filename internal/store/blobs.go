package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/latted-app/latted/internal/dbx"
)

// Blobs persists entry media, one blob per entry id, last write wins.
type Blobs struct {
	db dbx.DBTX
}

func NewBlobs(db dbx.DBTX) *Blobs {
	return &Blobs{db: db}
}

func (b *Blobs) Put(ctx context.Context, id string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO blobs (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, id, data)
	if err != nil {
		return fmt.Errorf("failed to put blob[%s]: %w", id, err)
	}
	return nil
}

// Get returns the blob for id, or nil when absent. A missing blob is never
// an error.
func (b *Blobs) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob[%s]: %w", id, err)
	}
	return data, nil
}

func (b *Blobs) Delete(ctx context.Context, id string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM blobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blob[%s]: %w", id, err)
	}
	return nil
}
