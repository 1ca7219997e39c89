// Package app is the composition root: it owns the database handle, the
// remote adapters, the sync engine and the feed cache, and hands explicit
// references to every component instead of sharing globals.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/latted-app/latted/internal/config"
	"github.com/latted-app/latted/internal/entries"
	"github.com/latted-app/latted/internal/feed"
	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/profile"
	"github.com/latted-app/latted/internal/remote"
	"github.com/latted-app/latted/internal/social"
	"github.com/latted-app/latted/internal/store"
	"github.com/latted-app/latted/internal/sync"
	"github.com/latted-app/latted/internal/thumb"
)

// App wires the data layer together for the presentation layer to consume.
type App struct {
	Config   *config.Config
	Log      logging.Logger
	Store    *store.Store
	Identity *remote.TokenIdentity
	Profile  *profile.Service
	Entries  *entries.Service
	Social   *social.Service
	Sync     *sync.Engine
	Feed     *feed.Assembler

	docs *remote.SurrealDocuments
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New opens the local store and builds every service. A store-open failure
// is fatal here, once, and never retried per call.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, logLevel(cfg.LogLevel))

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	docs, err := remote.NewSurrealDocuments(cfg.DocServiceURL, cfg.DocServiceNS, cfg.DocServiceDB, cfg.DocServiceUser, cfg.DocServicePass)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	blobs, err := remote.NewS3Blobs(ctx, remote.S3Config{
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		docs.Close()
		_ = st.Close()
		return nil, err
	}

	identity := remote.NewTokenIdentity()
	thumbs := &thumb.ImageGenerator{Timeout: cfg.ThumbnailTimeout}

	prof := profile.NewService(st.Documents)
	engine := sync.NewEngine(docs, blobs, identity, st, thumbs, log.With("component", "sync"))
	ents := entries.NewService(st, prof, thumbs, engine, log.With("component", "entries"))
	soc := social.NewService(st.Documents, log.With("component", "social"))
	asm := feed.NewAssembler(docs, identity, st.Documents, feed.NewCache(cfg.FeedCacheTTL), log.With("component", "feed"))

	a := &App{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Identity: identity,
		Profile:  prof,
		Entries:  ents,
		Social:   soc,
		Sync:     engine,
		Feed:     asm,
		docs:     docs,
	}

	// Sign-in triggers a best-effort background full sync; its failure is
	// logged and dropped, never surfaced to the sign-in flow.
	identity.Subscribe(func(u *remote.User) {
		if u == nil {
			return
		}
		go func() {
			ctx := context.Background()
			if err := engine.PullProfile(ctx); err != nil {
				log.Warn(ctx, "profile pull after sign-in failed", "err", err)
			}
			if err := engine.FullSync(ctx, nil); err != nil {
				log.Warn(ctx, "full sync after sign-in failed", "err", err)
			}
			asm.Invalidate()
		}()
	})

	return a, nil
}

// Close drops the document service connection and releases the local store.
func (a *App) Close() error {
	a.docs.Close()
	return a.Store.Close()
}
