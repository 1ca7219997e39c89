// Package profile manages the per-installation profile, display settings,
// loadout presets and the entry draft.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/store"
)

type Service struct {
	docs *store.Documents
}

func NewService(docs *store.Documents) *Service {
	return &Service{docs: docs}
}

// Get returns the profile, creating it with a fresh stable id on first use.
// The id is the local identity anchor and is never regenerated.
func (s *Service) Get(ctx context.Context) (models.Profile, error) {
	p, err := s.docs.LoadProfile(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	if p != nil {
		return *p, nil
	}

	fresh := models.Profile{ID: ident.NewID()}
	if err := s.docs.SaveProfile(ctx, fresh); err != nil {
		return models.Profile{}, fmt.Errorf("failed to initialize profile: %w", err)
	}
	return fresh, nil
}

// Update overwrites the mutable profile fields, keeping the stored id even
// if the caller supplies a different one.
func (s *Service) Update(ctx context.Context, p models.Profile) (models.Profile, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	p.ID = current.ID
	if err := s.docs.SaveProfile(ctx, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Service) Settings(ctx context.Context) (models.Settings, error) {
	return s.docs.LoadSettings(ctx)
}

func (s *Service) SaveSettings(ctx context.Context, set models.Settings) error {
	return s.docs.SaveSettings(ctx, set)
}

// SaveDraft persists the unfinished entry form.
func (s *Service) SaveDraft(ctx context.Context, d models.Draft) error {
	d.SavedAt = time.Now().UnixMilli()
	return s.docs.Save(ctx, store.KeyDraft, d)
}

// Draft returns the saved draft, nil when none exists.
func (s *Service) Draft(ctx context.Context) (*models.Draft, error) {
	var d models.Draft
	ok, err := s.docs.Load(ctx, store.KeyDraft, &d)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (s *Service) ClearDraft(ctx context.Context) error {
	return s.docs.Delete(ctx, store.KeyDraft)
}
