package social

import (
	"context"
	"fmt"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/models"
)

func voteKey(entryID, commentID string) string {
	return entryID + "/" + commentID
}

// UserVote returns the caller's stored choice for a comment: +1, -1 or 0.
func (s *Service) UserVote(ctx context.Context, entryID, commentID string) (int, error) {
	votes, err := s.docs.LoadVotes(ctx)
	if err != nil {
		return 0, err
	}
	return votes[voteKey(entryID, commentID)], nil
}

// Vote applies a single-choice vote: voting the same value twice clears it,
// voting the opposite value flips both the stored choice and the counters.
// Counters clamp at zero. Returns the comment after the adjustment.
func (s *Service) Vote(ctx context.Context, voterID, entryID, commentID string, value int) (*models.Comment, error) {
	if value != models.VoteUp && value != models.VoteDown {
		return nil, fmt.Errorf("invalid vote value %d", value)
	}

	doc, err := s.openComments(ctx, entryID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.comments {
		if doc.comments[i].ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.ErrNotFound
	}

	votes, err := s.docs.LoadVotes(ctx)
	if err != nil {
		return nil, err
	}

	key := voteKey(entryID, commentID)
	prev := votes[key]
	c := &doc.comments[idx]

	adjust := func(v, delta int) {
		switch v {
		case models.VoteUp:
			c.Upvotes += delta
			if c.Upvotes < 0 {
				c.Upvotes = 0
			}
		case models.VoteDown:
			c.Downvotes += delta
			if c.Downvotes < 0 {
				c.Downvotes = 0
			}
		}
	}

	if prev == value {
		// Toggle-off.
		adjust(value, -1)
		delete(votes, key)
	} else {
		if prev != 0 {
			adjust(prev, -1)
		}
		adjust(value, 1)
		votes[key] = value
	}

	if err := doc.save(ctx, doc.comments); err != nil {
		return nil, err
	}
	if err := s.docs.SaveVotes(ctx, votes); err != nil {
		return nil, err
	}

	// First upvote only: counters carried in from synced data stay silent.
	if value == models.VoteUp && prev != models.VoteUp && c.Upvotes == 1 && c.UserID != voterID {
		s.notify(ctx, models.NotifyUpvote,
			"your comment received an upvote", "/entry/"+entryID)
	}

	result := *c
	return &result, nil
}
