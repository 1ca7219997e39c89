package feed

import (
	"context"
	"sort"

	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/remote"
	"github.com/latted-app/latted/internal/store"
)

// Filter narrows the feed. Zero fields are ignored; set fields are
// AND-combined with exact matching.
type Filter struct {
	Country string
	State   string
	City    string
	Pattern string

	// FollowedOnly keeps entries whose owner is in the following set.
	// The caller's own entries always pass, whichever id space they use.
	FollowedOnly bool
}

// Assembler builds the community feed view.
type Assembler struct {
	docs  remote.Documents
	id    remote.Identity
	local *store.Documents
	cache *Cache
	log   logging.Logger
}

func NewAssembler(docs remote.Documents, id remote.Identity, local *store.Documents, cache *Cache, log logging.Logger) *Assembler {
	return &Assembler{docs: docs, id: id, local: local, cache: cache, log: log}
}

// Invalidate drops the cached remote collection.
func (a *Assembler) Invalidate() { a.cache.Invalidate() }

// remoteFeed returns the cached public collection, refetching when stale and
// falling back to the demo filler when the fetch fails or comes back empty.
func (a *Assembler) remoteFeed(ctx context.Context) []models.FeedEntry {
	if cached, ok := a.cache.Get(); ok {
		return cached
	}

	var fetched []models.FeedEntry
	if a.docs != nil {
		var err error
		fetched, err = a.docs.ListFeed(ctx)
		if err != nil {
			a.log.Warn(ctx, "public feed fetch failed, using demo data", "err", err)
			fetched = nil
		}
	}
	if len(fetched) == 0 {
		fetched = DemoEntries()
	}

	a.cache.Set(fetched)
	return fetched
}

// Feed merges the remote public collection with the caller's own local
// public entries that have not reached it yet, applies the filter and
// returns the result newest-first. Local entries are denormalized with a
// live profile snapshot so a renamed user sees their current name.
func (a *Assembler) Feed(ctx context.Context, f Filter) ([]models.FeedEntry, error) {
	base := a.remoteFeed(ctx)

	seen := make(map[string]bool, len(base))
	out := make([]models.FeedEntry, 0, len(base))
	for _, fe := range base {
		seen[fe.ID] = true
		out = append(out, fe)
	}

	locals, err := a.local.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	prof, err := a.local.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range locals {
		if !e.IsPublic || seen[e.ID] {
			continue
		}
		fe := models.FeedEntryOf(e)
		if prof != nil {
			fe.User = prof.Snapshot()
		}
		out = append(out, fe)
	}

	out, err = a.filter(ctx, out, f)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (a *Assembler) filter(ctx context.Context, in []models.FeedEntry, f Filter) ([]models.FeedEntry, error) {
	var allowed map[string]bool
	if f.FollowedOnly {
		following, err := a.local.LoadFollowing(ctx)
		if err != nil {
			return nil, err
		}
		allowed = make(map[string]bool, len(following)+2)
		for id := range following {
			allowed[id] = true
		}
		// Own entries pass in both id spaces: the stable local profile id
		// and, when signed in, the remote identity id.
		if prof, err := a.local.LoadProfile(ctx); err == nil && prof != nil {
			allowed[prof.ID] = true
		}
		if a.id != nil {
			if user := a.id.Current(); user != nil {
				allowed[user.ID] = true
			}
		}
	}

	out := in[:0]
	for _, fe := range in {
		if f.Country != "" && fe.User.Location.Country != f.Country {
			continue
		}
		if f.State != "" && fe.User.Location.State != f.State {
			continue
		}
		if f.City != "" && fe.User.Location.City != f.City {
			continue
		}
		if f.Pattern != "" && fe.Params.Pattern != f.Pattern {
			continue
		}
		if allowed != nil && !allowed[fe.User.ID] {
			continue
		}
		out = append(out, fe)
	}
	return out, nil
}
