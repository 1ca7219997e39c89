package profile

import (
	"context"
	"time"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/store"
)

// Loadouts returns all saved presets, newest first.
func (s *Service) Loadouts(ctx context.Context) ([]models.Loadout, error) {
	return s.docs.LoadLoadouts(ctx)
}

func (s *Service) CreateLoadout(ctx context.Context, l models.Loadout) (models.Loadout, error) {
	l.ID = ident.NewID()
	l.CreatedAt = time.Now().UnixMilli()

	loadouts, err := s.docs.LoadLoadouts(ctx)
	if err != nil {
		return models.Loadout{}, err
	}
	loadouts = append([]models.Loadout{l}, loadouts...)
	if err := s.docs.SaveLoadouts(ctx, loadouts); err != nil {
		return models.Loadout{}, err
	}
	return l, nil
}

func (s *Service) UpdateLoadout(ctx context.Context, l models.Loadout) (*models.Loadout, error) {
	loadouts, err := s.docs.LoadLoadouts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range loadouts {
		if loadouts[i].ID == l.ID {
			l.CreatedAt = loadouts[i].CreatedAt
			loadouts[i] = l
			if err := s.docs.SaveLoadouts(ctx, loadouts); err != nil {
				return nil, err
			}
			return &l, nil
		}
	}
	return nil, common.ErrNotFound
}

// DeleteLoadout removes the preset and clears the active pointer when it
// pointed at the deleted id.
func (s *Service) DeleteLoadout(ctx context.Context, id string) error {
	loadouts, err := s.docs.LoadLoadouts(ctx)
	if err != nil {
		return err
	}
	kept := loadouts[:0]
	for _, l := range loadouts {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(loadouts) {
		return common.ErrNotFound
	}
	if err := s.docs.SaveLoadouts(ctx, kept); err != nil {
		return err
	}

	active, err := s.ActiveLoadout(ctx)
	if err == nil && active == id {
		return s.SetActiveLoadout(ctx, "")
	}
	return err
}

// ActiveLoadout returns the id of the designated preset, "" when none.
func (s *Service) ActiveLoadout(ctx context.Context) (string, error) {
	var id string
	if _, err := s.docs.Load(ctx, store.KeyActiveLoadout, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) SetActiveLoadout(ctx context.Context, id string) error {
	return s.docs.Save(ctx, store.KeyActiveLoadout, id)
}
