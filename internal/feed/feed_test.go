package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/remote"
	"github.com/latted-app/latted/internal/store"
)

// feedDocs stubs remote.Documents for feed assembly; only ListFeed matters.
type feedDocs struct {
	feed  []models.FeedEntry
	err   error
	calls int
}

func (f *feedDocs) ListFeed(ctx context.Context) ([]models.FeedEntry, error) {
	f.calls++
	return f.feed, f.err
}

func (f *feedDocs) PutEntry(ctx context.Context, userID string, e models.Entry) error { return nil }
func (f *feedDocs) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return nil, nil
}
func (f *feedDocs) DeleteEntry(ctx context.Context, userID, entryID string) error  { return nil }
func (f *feedDocs) PutFeedEntry(ctx context.Context, fe models.FeedEntry) error    { return nil }
func (f *feedDocs) DeleteFeedEntry(ctx context.Context, entryID string) error      { return nil }
func (f *feedDocs) PutProfile(ctx context.Context, userID string, p models.Profile) error {
	return nil
}
func (f *feedDocs) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, nil
}

type staticIdentity struct {
	user *remote.User
}

func (s *staticIdentity) Current() *remote.User { return s.user }

func setupFeed(t *testing.T, name string, docs *feedDocs) (*Assembler, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	st.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { _ = st.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cache := NewCache(DefaultTTL)
	a := NewAssembler(docs, &staticIdentity{}, st.Documents, cache, log)
	return a, st
}

func TestFeed_FallsBackToDemoData(t *testing.T) {
	a, _ := setupFeed(t, "feeddemo", &feedDocs{err: errors.New("offline")})

	out, err := a.Feed(context.Background(), Filter{})
	require.NoError(t, err)
	require.Equal(t, len(DemoEntries()), len(out))
	for _, fe := range out {
		require.Contains(t, fe.ID, "demo-")
	}
}

func TestFeed_EmptyRemoteAlsoFallsBack(t *testing.T) {
	a, _ := setupFeed(t, "feedempty", &feedDocs{})

	out, err := a.Feed(context.Background(), Filter{})
	require.NoError(t, err)
	require.Equal(t, len(DemoEntries()), len(out))
}

func TestFeed_CachesRemoteFetch(t *testing.T) {
	docs := &feedDocs{feed: []models.FeedEntry{{ID: "f1", CreatedAt: 100}}}
	a, _ := setupFeed(t, "feedcache", docs)
	ctx := context.Background()

	_, err := a.Feed(ctx, Filter{})
	require.NoError(t, err)
	_, err = a.Feed(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, docs.calls, "second read served from cache")

	a.Invalidate()
	_, err = a.Feed(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 2, docs.calls)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(30 * time.Second)
	clock := time.Unix(1000, 0)
	c.now = func() time.Time { return clock }

	c.Set([]models.FeedEntry{{ID: "f1"}})
	_, ok := c.Get()
	require.True(t, ok)

	clock = clock.Add(31 * time.Second)
	_, ok = c.Get()
	require.False(t, ok)
}

func TestFeed_MergesUnsyncedLocalPublicEntries(t *testing.T) {
	docs := &feedDocs{feed: []models.FeedEntry{{ID: "remote1", CreatedAt: 100}}}
	a, st := setupFeed(t, "feedmerge", docs)
	ctx := context.Background()

	require.NoError(t, st.Documents.SaveProfile(ctx, models.Profile{ID: "me", Name: "Current Name"}))
	require.NoError(t, st.Documents.SaveEntries(ctx, []models.Entry{
		{ID: "localpub", CreatedAt: 300, IsPublic: true, User: models.UserSnapshot{ID: "me", Name: "Old Name"}},
		{ID: "localpriv", CreatedAt: 400, IsPublic: false},
		{ID: "remote1", CreatedAt: 100, IsPublic: true}, // already in the remote set
	}))

	out, err := a.Feed(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, out, 2, "private entries and duplicates stay out")
	require.Equal(t, "localpub", out[0].ID, "newest first")
	require.Equal(t, "remote1", out[1].ID)
	require.Equal(t, "Current Name", out[0].User.Name, "local entries carry the live profile snapshot")
}

func TestFeed_Filters(t *testing.T) {
	docs := &feedDocs{feed: []models.FeedEntry{
		{ID: "a", CreatedAt: 4, Params: models.Params{Pattern: "heart"},
			User: models.UserSnapshot{ID: "u1", Location: models.Location{Country: "US", State: "OR", City: "Portland"}}},
		{ID: "b", CreatedAt: 3, Params: models.Params{Pattern: "rosetta"},
			User: models.UserSnapshot{ID: "u2", Location: models.Location{Country: "US", State: "WA", City: "Seattle"}}},
		{ID: "c", CreatedAt: 2, Params: models.Params{Pattern: "heart"},
			User: models.UserSnapshot{ID: "u3", Location: models.Location{Country: "IT", City: "Milan"}}},
	}}
	a, _ := setupFeed(t, "feedfilter", docs)
	ctx := context.Background()

	out, err := a.Feed(ctx, Filter{Pattern: "heart"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	out, err = a.Feed(ctx, Filter{Country: "US", Pattern: "heart"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "a", out[0].ID)

	out, err = a.Feed(ctx, Filter{City: "Seattle"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "b", out[0].ID)

	out, err = a.Feed(ctx, Filter{Country: "FR"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFeed_FollowedOnly(t *testing.T) {
	docs := &feedDocs{feed: []models.FeedEntry{
		{ID: "followed", CreatedAt: 3, User: models.UserSnapshot{ID: "friend"}},
		{ID: "stranger", CreatedAt: 2, User: models.UserSnapshot{ID: "nobody"}},
		{ID: "mine", CreatedAt: 1, User: models.UserSnapshot{ID: "me"}},
	}}
	a, st := setupFeed(t, "feedfollow", docs)
	ctx := context.Background()

	require.NoError(t, st.Documents.SaveProfile(ctx, models.Profile{ID: "me"}))
	require.NoError(t, st.Documents.SaveFollowing(ctx, map[string]bool{"friend": true}))

	out, err := a.Feed(ctx, Filter{FollowedOnly: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "followed", out[0].ID)
	require.Equal(t, "mine", out[1].ID, "own entries always pass")
}

func TestFeed_FollowedOnlyIncludesRemoteIdentity(t *testing.T) {
	docs := &feedDocs{feed: []models.FeedEntry{
		{ID: "cloudmine", CreatedAt: 1, User: models.UserSnapshot{ID: "alice"}},
	}}
	a, _ := setupFeed(t, "feedfollowid", docs)
	a.id = &staticIdentity{user: &remote.User{ID: "alice"}}

	out, err := a.Feed(context.Background(), Filter{FollowedOnly: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
}
