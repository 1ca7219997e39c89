package social

import (
	"context"

	"github.com/latted-app/latted/internal/store"
)

// Saved and reported comments are independent boolean sets per
// (entry, comment) pair; they never touch vote counts or edit rights.

func (s *Service) toggleSet(ctx context.Context, key, entryID, commentID string) (bool, error) {
	set := map[string]bool{}
	if _, err := s.docs.Load(ctx, key, &set); err != nil {
		return false, err
	}
	k := voteKey(entryID, commentID)
	if set[k] {
		delete(set, k)
	} else {
		set[k] = true
	}
	if err := s.docs.Save(ctx, key, set); err != nil {
		return false, err
	}
	return set[k], nil
}

func (s *Service) inSet(ctx context.Context, key, entryID, commentID string) (bool, error) {
	set := map[string]bool{}
	if _, err := s.docs.Load(ctx, key, &set); err != nil {
		return false, err
	}
	return set[voteKey(entryID, commentID)], nil
}

// ToggleSaved flips the saved flag and returns the new state.
func (s *Service) ToggleSaved(ctx context.Context, entryID, commentID string) (bool, error) {
	return s.toggleSet(ctx, store.KeySavedComments, entryID, commentID)
}

func (s *Service) IsSaved(ctx context.Context, entryID, commentID string) (bool, error) {
	return s.inSet(ctx, store.KeySavedComments, entryID, commentID)
}

// ToggleReported flips the reported flag and returns the new state.
func (s *Service) ToggleReported(ctx context.Context, entryID, commentID string) (bool, error) {
	return s.toggleSet(ctx, store.KeyReportedComments, entryID, commentID)
}

func (s *Service) IsReported(ctx context.Context, entryID, commentID string) (bool, error) {
	return s.inSet(ctx, store.KeyReportedComments, entryID, commentID)
}
