package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/latted-app/latted/internal/dbx"
)

// Document keys. Every mutation reads the whole document, changes it in
// memory and writes the whole document back; this is safe for the
// single-writer model and deliberately carries no field-level updates.
const (
	KeyEntries          = "entries"
	KeySettings         = "settings"
	KeyProfile          = "profile"
	KeyFollowing        = "following"
	KeyNotifications    = "notifications"
	KeyVotes            = "votes"
	KeyLoadouts         = "loadouts"
	KeyActiveLoadout    = "active_loadout"
	KeySavedComments    = "saved_comments"
	KeyReportedComments = "reported_comments"
	KeyDraft            = "draft"
)

// MockCommentsKey is the side document holding comments for one mock entry.
func MockCommentsKey(entryID string) string {
	return "mock_comments_" + entryID
}

// Documents is the whole-document key-value store.
type Documents struct {
	db dbx.DBTX
}

func NewDocuments(db dbx.DBTX) *Documents {
	return &Documents{db: db}
}

// Load unmarshals the document under key into v. Returns false and leaves v
// untouched when the key is absent; a missing document is not an error.
func (d *Documents) Load(ctx context.Context, key string, v any) (bool, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load document[%s]: %w", key, err)
	}
	if err := json.Unmarshal(value, v); err != nil {
		return false, fmt.Errorf("failed to decode document[%s]: %w", key, err)
	}
	return true, nil
}

// Save overwrites the document under key with the serialized form of v.
func (d *Documents) Save(ctx context.Context, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document[%s]: %w", key, err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save document[%s]: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Deleting an absent key is a no-op.
func (d *Documents) Delete(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete document[%s]: %w", key, err)
	}
	return nil
}
