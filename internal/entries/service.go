// Package entries implements the entry lifecycle: create, update and delete
// of practice-session records, keeping the invariant that every entry has
// exactly one media blob and (best-effort) a thumbnail. Cloud propagation is
// fire-and-forget; local persistence alone decides success.
package entries

import (
	"context"
	"time"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/profile"
	"github.com/latted-app/latted/internal/store"
	"github.com/latted-app/latted/internal/thumb"
)

// CloudPusher is the slice of the sync engine the lifecycle needs for its
// background pushes. Nil disables cloud propagation entirely.
type CloudPusher interface {
	PushEntry(ctx context.Context, e *models.Entry, media []byte) (bool, error)
	DeleteRemote(ctx context.Context, entryID string) error
}

type Service struct {
	store   *store.Store
	profile *profile.Service
	thumbs  thumb.Generator
	pusher  CloudPusher
	log     logging.Logger

	// bg runs detached work; tests replace it with a synchronous runner.
	bg func(fn func())
}

func NewService(st *store.Store, prof *profile.Service, thumbs thumb.Generator, pusher CloudPusher, log logging.Logger) *Service {
	return &Service{
		store:   st,
		profile: prof,
		thumbs:  thumbs,
		pusher:  pusher,
		log:     log,
		bg:      func(fn func()) { go fn() },
	}
}

// List returns all local entries, newest first.
func (s *Service) List(ctx context.Context) ([]models.Entry, error) {
	return s.store.Documents.LoadEntries(ctx)
}

// Get returns the entry with id, or nil when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.Entry, error) {
	entries, err := s.store.Documents.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// Create persists a new entry from the supplied fields and media blob,
// prepends it to the collection and schedules a best-effort cloud push.
// A failed thumbnail leaves Media.Thumbnail nil and is not an error.
func (s *Service) Create(ctx context.Context, data models.Entry, media []byte) (*models.Entry, error) {
	prof, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}

	e := data
	e.ID = ident.NewID()
	e.CreatedAt = time.Now().UnixMilli()
	e.User = prof.Snapshot()
	e.Comments = nil
	e.SyncedAt = 0
	e.Media.CloudURL = ""
	e.Media.Thumbnail = s.thumbs.Make(ctx, media, e.Media.Type)

	err = s.store.WithTx(ctx, func(docs *store.Documents, blobs *store.Blobs) error {
		if err := blobs.Put(ctx, e.ID, media); err != nil {
			return err
		}
		entries, err := docs.LoadEntries(ctx)
		if err != nil {
			return err
		}
		return docs.SaveEntries(ctx, append([]models.Entry{e}, entries...))
	})
	if err != nil {
		return nil, err
	}

	s.pushLater(e, media)
	return &e, nil
}

// Update replaces the mutable fields of the entry with id. When media is
// non-nil the blob and thumbnail are replaced and the recorded remote URL is
// cleared, forcing re-upload on the next sync. Returns ErrNotFound when the
// id is absent.
func (s *Service) Update(ctx context.Context, id string, data models.Entry, media []byte) (*models.Entry, error) {
	var updated models.Entry
	found := false

	err := s.store.WithTx(ctx, func(docs *store.Documents, blobs *store.Blobs) error {
		entries, err := docs.LoadEntries(ctx)
		if err != nil {
			return err
		}
		for i := range entries {
			if entries[i].ID != id {
				continue
			}
			found = true

			e := entries[i]
			e.Params = data.Params
			e.Beans = data.Beans
			e.Rating = data.Rating
			e.Notes = data.Notes
			e.IsPublic = data.IsPublic

			if media != nil {
				if err := blobs.Put(ctx, id, media); err != nil {
					return err
				}
				if data.Media.Type != "" {
					e.Media.Type = data.Media.Type
				}
				e.Media.Thumbnail = s.thumbs.Make(ctx, media, e.Media.Type)
				e.Media.CloudURL = ""
			}

			entries[i] = e
			updated = e
			return docs.SaveEntries(ctx, entries)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrNotFound
	}

	s.pushLater(updated, media)
	return &updated, nil
}

// Delete removes the blob and the metadata record; the remote copy is
// deleted asynchronously and its failure never rolls back the local delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(docs *store.Documents, blobs *store.Blobs) error {
		if err := blobs.Delete(ctx, id); err != nil {
			return err
		}
		entries, err := docs.LoadEntries(ctx)
		if err != nil {
			return err
		}
		kept := entries[:0]
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return docs.SaveEntries(ctx, kept)
	})
	if err != nil {
		return err
	}

	if s.pusher != nil {
		s.bg(func() {
			if err := s.pusher.DeleteRemote(context.Background(), id); err != nil {
				s.log.Warn(context.Background(), "background remote delete failed", "entry", id, "err", err)
			}
		})
	}
	return nil
}

// pushLater schedules a detached cloud push. Failures are logged and
// dropped; the next explicit sync is the retry mechanism.
func (s *Service) pushLater(e models.Entry, media []byte) {
	if s.pusher == nil {
		return
	}
	s.bg(func() {
		ctx := context.Background()
		if _, err := s.pusher.PushEntry(ctx, &e, media); err != nil {
			s.log.Warn(ctx, "background entry push failed", "entry", e.ID, "err", err)
		}
	})
}
