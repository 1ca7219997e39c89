package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latted-app/latted/internal/models"
)

func setupStore(t *testing.T, name string) *Store {
	t.Helper()
	st, err := Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	st.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestDocuments_LoadMissingKey(t *testing.T) {
	st := setupStore(t, "docmissing")

	var entries []models.Entry
	ok, err := st.Documents.Load(context.Background(), KeyEntries, &entries)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, entries)
}

func TestDocuments_SaveOverwritesWholeDocument(t *testing.T) {
	st := setupStore(t, "docsave")
	ctx := context.Background()

	require.NoError(t, st.Documents.SaveEntries(ctx, []models.Entry{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, st.Documents.SaveEntries(ctx, []models.Entry{{ID: "c"}}))

	entries, err := st.Documents.LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "c", entries[0].ID)
}

func TestDocuments_Delete(t *testing.T) {
	st := setupStore(t, "docdelete")
	ctx := context.Background()

	require.NoError(t, st.Documents.Save(ctx, KeyDraft, models.Draft{Notes: "wip"}))
	require.NoError(t, st.Documents.Delete(ctx, KeyDraft))

	var d models.Draft
	ok, err := st.Documents.Load(ctx, KeyDraft, &d)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, st.Documents.Delete(ctx, KeyDraft))
}

func TestBlobs_PutGetDelete(t *testing.T) {
	st := setupStore(t, "blobs")
	ctx := context.Background()

	require.NoError(t, st.Blobs.Put(ctx, "e1", []byte{1, 2, 3}))

	data, err := st.Blobs.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	// Last write wins.
	require.NoError(t, st.Blobs.Put(ctx, "e1", []byte{9}))
	data, err = st.Blobs.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, []byte{9}, data)

	require.NoError(t, st.Blobs.Delete(ctx, "e1"))
	data, err = st.Blobs.Get(ctx, "e1")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestBlobs_GetMissingIsNil(t *testing.T) {
	st := setupStore(t, "blobmissing")

	data, err := st.Blobs.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st := setupStore(t, "txrollback")
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(docs *Documents, blobs *Blobs) error {
		if err := blobs.Put(ctx, "e1", []byte{1}); err != nil {
			return err
		}
		if err := docs.SaveEntries(ctx, []models.Entry{{ID: "e1"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := st.Blobs.Get(ctx, "e1")
	require.NoError(t, err)
	require.Nil(t, data)

	entries, err := st.Documents.LoadEntries(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTypedVotesAndFollowing(t *testing.T) {
	st := setupStore(t, "typed")
	ctx := context.Background()

	votes, err := st.Documents.LoadVotes(ctx)
	require.NoError(t, err)
	require.Empty(t, votes)

	votes["e1/c1"] = 1
	require.NoError(t, st.Documents.SaveVotes(ctx, votes))

	votes, err = st.Documents.LoadVotes(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, votes["e1/c1"])

	following, err := st.Documents.LoadFollowing(ctx)
	require.NoError(t, err)
	following["u2"] = true
	require.NoError(t, st.Documents.SaveFollowing(ctx, following))

	following, err = st.Documents.LoadFollowing(ctx)
	require.NoError(t, err)
	require.True(t, following["u2"])
}
