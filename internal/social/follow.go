package social

import (
	"context"
)

// Follow adds userID to the following set.
func (s *Service) Follow(ctx context.Context, userID string) error {
	following, err := s.docs.LoadFollowing(ctx)
	if err != nil {
		return err
	}
	following[userID] = true
	return s.docs.SaveFollowing(ctx, following)
}

// Unfollow removes userID from the following set.
func (s *Service) Unfollow(ctx context.Context, userID string) error {
	following, err := s.docs.LoadFollowing(ctx)
	if err != nil {
		return err
	}
	delete(following, userID)
	return s.docs.SaveFollowing(ctx, following)
}

func (s *Service) IsFollowing(ctx context.Context, userID string) (bool, error) {
	following, err := s.docs.LoadFollowing(ctx)
	if err != nil {
		return false, err
	}
	return following[userID], nil
}

// Following returns the whole followed-id set.
func (s *Service) Following(ctx context.Context) (map[string]bool, error) {
	return s.docs.LoadFollowing(ctx)
}
