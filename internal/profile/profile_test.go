package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/store"
)

func setupProfile(t *testing.T, name string) *Service {
	t.Helper()
	st, err := store.Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	st.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st.Documents)
}

func TestGet_CreatesStableID(t *testing.T) {
	svc := setupProfile(t, "profget")
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestUpdate_KeepsStoredID(t *testing.T) {
	svc := setupProfile(t, "profupdate")
	ctx := context.Background()

	p, err := svc.Get(ctx)
	require.NoError(t, err)

	p.ID = "forged"
	p.Name = "Mia"
	updated, err := svc.Update(ctx, p)
	require.NoError(t, err)
	require.NotEqual(t, "forged", updated.ID)
	require.Equal(t, "Mia", updated.Name)
}

func TestSettings_Roundtrip(t *testing.T) {
	svc := setupProfile(t, "profsettings")
	ctx := context.Background()

	set, err := svc.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings(), set)

	set.TempUnit = "C"
	set.VolumeUnit = "oz"
	require.NoError(t, svc.SaveSettings(ctx, set))

	got, err := svc.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "C", got.TempUnit)
	require.Equal(t, "oz", got.VolumeUnit)
}

func TestLoadouts_Lifecycle(t *testing.T) {
	svc := setupProfile(t, "profloadouts")
	ctx := context.Background()

	first, err := svc.CreateLoadout(ctx, models.Loadout{Name: "morning", Params: models.Params{Pattern: "heart"}})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.NotZero(t, first.CreatedAt)

	second, err := svc.CreateLoadout(ctx, models.Loadout{Name: "competition"})
	require.NoError(t, err)

	ls, err := svc.Loadouts(ctx)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	require.Equal(t, second.ID, ls[0].ID, "newest first")

	first.Name = "weekday"
	updated, err := svc.UpdateLoadout(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "weekday", updated.Name)
	require.Equal(t, first.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateLoadout(ctx, models.Loadout{ID: "missing"})
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, svc.DeleteLoadout(ctx, second.ID))
	require.ErrorIs(t, svc.DeleteLoadout(ctx, second.ID), common.ErrNotFound)

	ls, err = svc.Loadouts(ctx)
	require.NoError(t, err)
	require.Len(t, ls, 1)
}

func TestActiveLoadout_ClearedOnDelete(t *testing.T) {
	svc := setupProfile(t, "profactive")
	ctx := context.Background()

	l, err := svc.CreateLoadout(ctx, models.Loadout{Name: "daily"})
	require.NoError(t, err)

	active, err := svc.ActiveLoadout(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	require.NoError(t, svc.SetActiveLoadout(ctx, l.ID))
	active, err = svc.ActiveLoadout(ctx)
	require.NoError(t, err)
	require.Equal(t, l.ID, active)

	require.NoError(t, svc.DeleteLoadout(ctx, l.ID))
	active, err = svc.ActiveLoadout(ctx)
	require.NoError(t, err)
	require.Empty(t, active, "pointer cleared with its target")
}

func TestDraft_Lifecycle(t *testing.T) {
	svc := setupProfile(t, "profdraft")
	ctx := context.Background()

	d, err := svc.Draft(ctx)
	require.NoError(t, err)
	require.Nil(t, d)

	require.NoError(t, svc.SaveDraft(ctx, models.Draft{Notes: "wip", Rating: 3}))
	d, err = svc.Draft(ctx)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, "wip", d.Notes)
	require.NotZero(t, d.SavedAt)

	// Whole-document overwrite.
	require.NoError(t, svc.SaveDraft(ctx, models.Draft{Notes: "second pass"}))
	d, err = svc.Draft(ctx)
	require.NoError(t, err)
	require.Equal(t, "second pass", d.Notes)
	require.Zero(t, d.Rating)

	require.NoError(t, svc.ClearDraft(ctx))
	d, err = svc.Draft(ctx)
	require.NoError(t, err)
	require.Nil(t, d)
}
