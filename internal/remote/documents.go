// Package remote holds the adapters for the hosted services the sync engine
// talks to: the document database, the blob storage, and the identity
// provider. Each concern sits behind a small interface so the engine and its
// tests never depend on a concrete provider.
package remote

import (
	"context"
	"fmt"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/models"
)

// Documents is the remote document service: per-user entry collections, one
// shared public feed collection, and per-user profile documents. Deleting an
// absent document is success, not an error.
type Documents interface {
	PutEntry(ctx context.Context, userID string, e models.Entry) error
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error

	PutFeedEntry(ctx context.Context, fe models.FeedEntry) error
	DeleteFeedEntry(ctx context.Context, entryID string) error
	ListFeed(ctx context.Context) ([]models.FeedEntry, error)

	PutProfile(ctx context.Context, userID string, p models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

const (
	feedTable    = "public_feed"
	profileTable = "profiles"
)

// SurrealDocuments implements Documents over the SurrealDB RPC connection.
type SurrealDocuments struct {
	db *surrealdb.DB
}

// NewSurrealDocuments connects to the document database RPC endpoint at url
// (e.g. ws://host:8000/rpc), signs in and selects namespace ns, database db.
func NewSurrealDocuments(url, ns, dbName, user, pass string) (*SurrealDocuments, error) {
	db, err := surrealdb.New(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document service: %w", err)
	}
	if _, err := db.Signin(map[string]interface{}{"user": user, "pass": pass}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to sign in to document service: %w", err)
	}
	if _, err := db.Use(ns, dbName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to select document database: %w", err)
	}
	return &SurrealDocuments{db: db}, nil
}

// Close drops the RPC connection.
func (s *SurrealDocuments) Close() { s.db.Close() }

// recordID makes an id usable inside a "table:id" record address. Record ids
// cannot carry the dashes of a UUID-shaped value unescaped.
func recordID(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

// entryTable is the per-user entry collection name.
func entryTable(userID string) string {
	return "entries_" + recordID(userID)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrUnavailable, op, err)
}

func (s *SurrealDocuments) PutEntry(ctx context.Context, userID string, e models.Entry) error {
	if _, err := s.db.Update(entryTable(userID)+":"+recordID(e.ID), e); err != nil {
		return wrap("put entry", err)
	}
	return nil
}

func (s *SurrealDocuments) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	data, err := s.db.Select(entryTable(userID))
	if err != nil {
		return nil, wrap("list entries", err)
	}
	var out []models.Entry
	if err := surrealdb.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode remote entries: %w", err)
	}
	return out, nil
}

func (s *SurrealDocuments) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if _, err := s.db.Delete(entryTable(userID) + ":" + recordID(entryID)); err != nil {
		return wrap("delete entry", err)
	}
	return nil
}

func (s *SurrealDocuments) PutFeedEntry(ctx context.Context, fe models.FeedEntry) error {
	if _, err := s.db.Update(feedTable+":"+recordID(fe.ID), fe); err != nil {
		return wrap("put feed entry", err)
	}
	return nil
}

func (s *SurrealDocuments) DeleteFeedEntry(ctx context.Context, entryID string) error {
	if _, err := s.db.Delete(feedTable + ":" + recordID(entryID)); err != nil {
		return wrap("delete feed entry", err)
	}
	return nil
}

func (s *SurrealDocuments) ListFeed(ctx context.Context) ([]models.FeedEntry, error) {
	data, err := s.db.Select(feedTable)
	if err != nil {
		return nil, wrap("list public feed", err)
	}
	var out []models.FeedEntry
	if err := surrealdb.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode public feed: %w", err)
	}
	return out, nil
}

func (s *SurrealDocuments) PutProfile(ctx context.Context, userID string, p models.Profile) error {
	if _, err := s.db.Update(profileTable+":"+recordID(userID), p); err != nil {
		return wrap("put profile", err)
	}
	return nil
}

func (s *SurrealDocuments) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	data, err := s.db.Select(profileTable + ":" + recordID(userID))
	if err != nil {
		// The driver reports a single-record select with no result as an
		// access error; an absent profile is not a failure here.
		return nil, nil
	}
	var p models.Profile
	if err := surrealdb.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode remote profile: %w", err)
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}
