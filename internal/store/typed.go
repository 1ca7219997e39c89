package store

import (
	"context"

	"github.com/latted-app/latted/internal/models"
)

// Typed accessors over the named documents. Each loads the whole collection;
// callers mutate in memory and save the whole collection back.

func (d *Documents) LoadEntries(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	if _, err := d.Load(ctx, KeyEntries, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *Documents) SaveEntries(ctx context.Context, entries []models.Entry) error {
	return d.Save(ctx, KeyEntries, entries)
}

func (d *Documents) LoadProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	ok, err := d.Load(ctx, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (d *Documents) SaveProfile(ctx context.Context, p models.Profile) error {
	return d.Save(ctx, KeyProfile, p)
}

func (d *Documents) LoadSettings(ctx context.Context) (models.Settings, error) {
	s := models.DefaultSettings()
	if _, err := d.Load(ctx, KeySettings, &s); err != nil {
		return s, err
	}
	return s, nil
}

func (d *Documents) SaveSettings(ctx context.Context, s models.Settings) error {
	return d.Save(ctx, KeySettings, s)
}

func (d *Documents) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	var ns []models.Notification
	if _, err := d.Load(ctx, KeyNotifications, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (d *Documents) SaveNotifications(ctx context.Context, ns []models.Notification) error {
	return d.Save(ctx, KeyNotifications, ns)
}

// LoadVotes returns the caller's vote choices keyed "entryID/commentID".
func (d *Documents) LoadVotes(ctx context.Context) (map[string]int, error) {
	votes := map[string]int{}
	if _, err := d.Load(ctx, KeyVotes, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (d *Documents) SaveVotes(ctx context.Context, votes map[string]int) error {
	return d.Save(ctx, KeyVotes, votes)
}

// LoadFollowing returns the followed user id set.
func (d *Documents) LoadFollowing(ctx context.Context) (map[string]bool, error) {
	following := map[string]bool{}
	if _, err := d.Load(ctx, KeyFollowing, &following); err != nil {
		return nil, err
	}
	return following, nil
}

func (d *Documents) SaveFollowing(ctx context.Context, following map[string]bool) error {
	return d.Save(ctx, KeyFollowing, following)
}

func (d *Documents) LoadLoadouts(ctx context.Context) ([]models.Loadout, error) {
	var ls []models.Loadout
	if _, err := d.Load(ctx, KeyLoadouts, &ls); err != nil {
		return nil, err
	}
	return ls, nil
}

func (d *Documents) SaveLoadouts(ctx context.Context, ls []models.Loadout) error {
	return d.Save(ctx, KeyLoadouts, ls)
}

// LoadMockComments returns the comment side-document of one mock entry.
func (d *Documents) LoadMockComments(ctx context.Context, entryID string) ([]models.Comment, error) {
	var cs []models.Comment
	if _, err := d.Load(ctx, MockCommentsKey(entryID), &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (d *Documents) SaveMockComments(ctx context.Context, entryID string, cs []models.Comment) error {
	return d.Save(ctx, MockCommentsKey(entryID), cs)
}
