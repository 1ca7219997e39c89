// Package sync reconciles the local stores against the remote document and
// blob services: best-effort, eventually consistent, last-writer-wins on the
// syncedAt scalar. Every operation is gated on the presence of a remote
// identity; without one the engine no-ops and local-only use continues
// undisturbed.
package sync

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/remote"
	"github.com/latted-app/latted/internal/store"
	"github.com/latted-app/latted/internal/thumb"
)

// Progress reports sync advancement to an optional observer.
type Progress func(done, total int)

func (p Progress) report(done, total int) {
	if p != nil {
		p(done, total)
	}
}

type Engine struct {
	docs   remote.Documents
	blobs  remote.Blobs
	id     remote.Identity
	store  *store.Store
	thumbs thumb.Generator
	log    logging.Logger

	// syncing guards against re-entrant sync sessions: a second invocation
	// while one runs is dropped, not queued.
	syncing atomic.Bool
}

func NewEngine(docs remote.Documents, blobs remote.Blobs, id remote.Identity, st *store.Store, thumbs thumb.Generator, log logging.Logger) *Engine {
	return &Engine{docs: docs, blobs: blobs, id: id, store: st, thumbs: thumbs, log: log}
}

func contentTypeFor(kind models.MediaKind) string {
	if kind == models.MediaVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}

// PushEntry uploads one entry's document (and media when supplied) to the
// cloud. Returns (false, nil) when there is no identity: skipping is not a
// failure. When media is nil any previously recorded remote URL is reused.
// The local record's remote URL and syncedAt are updated as a side effect,
// and the public mirror is created or removed to match isPublic.
func (e *Engine) PushEntry(ctx context.Context, entry *models.Entry, media []byte) (bool, error) {
	user := e.id.Current()
	if user == nil {
		return false, nil
	}

	url := entry.Media.CloudURL
	if media != nil {
		uploaded, err := e.blobs.Upload(ctx, user.ID, entry.ID, media, contentTypeFor(entry.Media.Type))
		if err != nil {
			return false, err
		}
		url = uploaded
	}

	doc := *entry
	doc.Media.Thumbnail = nil // thumbnails never travel
	doc.Media.CloudURL = url
	doc.SyncedAt = time.Now().UnixMilli()

	if err := e.docs.PutEntry(ctx, user.ID, doc); err != nil {
		return false, err
	}

	// Record the URL and sync time on the local copy.
	entries, err := e.store.Documents.LoadEntries(ctx)
	if err != nil {
		return false, err
	}
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i].Media.CloudURL = url
			entries[i].SyncedAt = doc.SyncedAt
			break
		}
	}
	if err := e.store.Documents.SaveEntries(ctx, entries); err != nil {
		return false, err
	}
	entry.Media.CloudURL = url
	entry.SyncedAt = doc.SyncedAt

	if doc.IsPublic {
		if err := e.docs.PutFeedEntry(ctx, models.FeedEntryOf(doc)); err != nil {
			return false, err
		}
	} else if err := e.docs.DeleteFeedEntry(ctx, doc.ID); err != nil {
		return false, err
	}

	return true, nil
}

// DeleteRemote removes the entry's document, blob and public mirror.
// Already-absent remote state counts as success.
func (e *Engine) DeleteRemote(ctx context.Context, entryID string) error {
	user := e.id.Current()
	if user == nil {
		return nil
	}

	return errors.Join(
		e.docs.DeleteEntry(ctx, user.ID, entryID),
		e.blobs.Delete(ctx, user.ID, entryID),
		e.docs.DeleteFeedEntry(ctx, entryID),
	)
}

// PullAll downloads the remote collection and merges it into the local one:
// unknown ids are inserted (with blob download and thumbnail regeneration),
// known ids are overwritten only when the remote copy is strictly newer,
// always preserving the locally held thumbnail. The merged collection is
// re-sorted newest-first and persisted as one document.
func (e *Engine) PullAll(ctx context.Context, onProgress Progress) error {
	if !e.syncing.CompareAndSwap(false, true) {
		return common.ErrSyncInProgress
	}
	defer e.syncing.Store(false)
	return e.pullAll(ctx, onProgress)
}

func (e *Engine) pullAll(ctx context.Context, onProgress Progress) error {
	user := e.id.Current()
	if user == nil {
		return common.ErrNoIdentity
	}

	remotes, err := e.docs.ListEntries(ctx, user.ID)
	if err != nil {
		return err
	}

	locals, err := e.store.Documents.LoadEntries(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]int, len(locals))
	for i := range locals {
		byID[locals[i].ID] = i
	}

	for n, re := range remotes {
		if i, ok := byID[re.ID]; ok {
			if re.SyncedAt > locals[i].SyncedAt {
				// Remote wins, but the thumbnail is local-only state and
				// survives the overwrite.
				thumbnail := locals[i].Media.Thumbnail
				locals[i] = re
				locals[i].Media.Thumbnail = thumbnail
			}
			onProgress.report(n+1, len(remotes))
			continue
		}

		if re.Media.CloudURL != "" {
			data, err := e.blobs.Download(ctx, re.Media.CloudURL)
			if err != nil {
				e.log.Warn(ctx, "failed to download entry media", "entry", re.ID, "err", err)
			} else {
				if err := e.store.Blobs.Put(ctx, re.ID, data); err != nil {
					return err
				}
				re.Media.Thumbnail = e.thumbs.Make(ctx, data, re.Media.Type)
			}
		}
		locals = append(locals, re)
		byID[re.ID] = len(locals) - 1
		onProgress.report(n+1, len(remotes))
	}

	sort.SliceStable(locals, func(i, j int) bool { return locals[i].CreatedAt > locals[j].CreatedAt })
	return e.store.Documents.SaveEntries(ctx, locals)
}

// PushAllLocal pushes every local entry's metadata, uploading the blob only
// when no remote URL is recorded yet. Per-entry failures are logged and the
// iteration continues; a later sync is the retry mechanism.
func (e *Engine) PushAllLocal(ctx context.Context, onProgress Progress) error {
	if e.id.Current() == nil {
		return common.ErrNoIdentity
	}

	entries, err := e.store.Documents.LoadEntries(ctx)
	if err != nil {
		return err
	}

	for n := range entries {
		entry := entries[n]

		var media []byte
		if entry.Media.CloudURL == "" {
			blob, err := e.store.Blobs.Get(ctx, entry.ID)
			if err != nil {
				return err
			}
			media = blob
		}

		if _, err := e.PushEntry(ctx, &entry, media); err != nil {
			e.log.Warn(ctx, "failed to push entry", "entry", entry.ID, "err", err)
		}
		onProgress.report(n+1, len(entries))
	}
	return nil
}

// FullSync runs one download-then-upload session. The order is deliberate:
// remote state lands first so genuinely new items win before the local
// pending set goes up. A session already in progress makes this a no-op.
func (e *Engine) FullSync(ctx context.Context, onProgress Progress) error {
	if !e.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer e.syncing.Store(false)

	if err := e.pullAll(ctx, onProgress); err != nil {
		return err
	}
	return e.PushAllLocal(ctx, onProgress)
}

// PushProfile uploads the local profile document. (false, nil) without an
// identity or a profile.
func (e *Engine) PushProfile(ctx context.Context) (bool, error) {
	user := e.id.Current()
	if user == nil {
		return false, nil
	}

	p, err := e.store.Documents.LoadProfile(ctx)
	if err != nil || p == nil {
		return false, err
	}

	p.SyncedAt = time.Now().UnixMilli()
	if err := e.docs.PutProfile(ctx, user.ID, *p); err != nil {
		return false, err
	}
	return true, e.store.Documents.SaveProfile(ctx, *p)
}

// PullProfile merges the cloud profile over the local one when the cloud
// copy is strictly newer. The locally generated id is the identity anchor
// and is never replaced by a remote value.
func (e *Engine) PullProfile(ctx context.Context) error {
	user := e.id.Current()
	if user == nil {
		return common.ErrNoIdentity
	}

	rp, err := e.docs.GetProfile(ctx, user.ID)
	if err != nil || rp == nil {
		return err
	}

	local, err := e.store.Documents.LoadProfile(ctx)
	if err != nil {
		return err
	}
	if local == nil {
		local = &models.Profile{ID: ident.NewID()}
	}
	if rp.SyncedAt > local.SyncedAt {
		merged := *rp
		merged.ID = local.ID
		return e.store.Documents.SaveProfile(ctx, merged)
	}
	return nil
}
