// Package social implements threaded comments, one-level toggle votes,
// saved/reported comment sets, the local notification inbox and the
// following set. The same vote and comment logic serves real entries and
// demo entries; only the storage location differs.
package social

import (
	"context"
	"fmt"
	"time"

	"github.com/latted-app/latted/internal/common"
	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/logging"
	"github.com/latted-app/latted/internal/models"
	"github.com/latted-app/latted/internal/store"
)

// MockIDPrefix marks demo entry ids; their comments live in side documents
// rather than on a local entry record.
const MockIDPrefix = "demo-"

func isMockID(id string) bool {
	return len(id) > len(MockIDPrefix) && id[:len(MockIDPrefix)] == MockIDPrefix
}

type Service struct {
	docs *store.Documents
	log  logging.Logger
}

func NewService(docs *store.Documents, log logging.Logger) *Service {
	return &Service{docs: docs, log: log}
}

// commentDoc abstracts where an entry's comments live: on the entry record
// for real entries, in a side document for mock entries.
type commentDoc struct {
	comments []models.Comment
	owner    *models.UserSnapshot
	save     func(ctx context.Context, cs []models.Comment) error
}

func (s *Service) openComments(ctx context.Context, entryID string) (*commentDoc, error) {
	entries, err := s.docs.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID != entryID {
			continue
		}
		idx := i
		return &commentDoc{
			comments: entries[idx].Comments,
			owner:    &entries[idx].User,
			save: func(ctx context.Context, cs []models.Comment) error {
				entries[idx].Comments = cs
				return s.docs.SaveEntries(ctx, entries)
			},
		}, nil
	}

	if isMockID(entryID) {
		cs, err := s.docs.LoadMockComments(ctx, entryID)
		if err != nil {
			return nil, err
		}
		return &commentDoc{
			comments: cs,
			save: func(ctx context.Context, cs []models.Comment) error {
				return s.docs.SaveMockComments(ctx, entryID, cs)
			},
		}, nil
	}

	return nil, common.ErrNotFound
}

// Comments returns the raw comment list for an entry or mock entry.
func (s *Service) Comments(ctx context.Context, entryID string) ([]models.Comment, error) {
	doc, err := s.openComments(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return doc.comments, nil
}

// AddComment appends a comment (or reply when parentID is set) and notifies
// the entry owner and, for replies to someone else, the parent author.
// Returns ErrNotFound when entryID resolves to nothing.
func (s *Service) AddComment(ctx context.Context, entryID string, author models.UserSnapshot, text, parentID string) (*models.Comment, error) {
	doc, err := s.openComments(ctx, entryID)
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:        ident.NewID(),
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      text,
		CreatedAt: time.Now().UnixMilli(),
		ParentID:  parentID,
	}

	if err := doc.save(ctx, append(doc.comments, c)); err != nil {
		return nil, err
	}

	if doc.owner != nil && doc.owner.ID != author.ID {
		s.notify(ctx, models.NotifyComment,
			fmt.Sprintf("%s commented on your entry", author.Name), "/entry/"+entryID)
	}
	if parentID != "" {
		for _, parent := range doc.comments {
			if parent.ID == parentID && parent.UserID != author.ID {
				s.notify(ctx, models.NotifyMention,
					fmt.Sprintf("%s replied to your comment", author.Name), "/entry/"+entryID)
				break
			}
		}
	}

	return &c, nil
}

// EditComment replaces the text of the caller's own comment. Editing
// somebody else's comment is refused with ErrPermissionDenied and leaves the
// collection unchanged.
func (s *Service) EditComment(ctx context.Context, entryID, commentID, userID, text string) (*models.Comment, error) {
	doc, err := s.openComments(ctx, entryID)
	if err != nil {
		return nil, err
	}

	for i := range doc.comments {
		if doc.comments[i].ID != commentID {
			continue
		}
		if doc.comments[i].UserID != userID {
			return nil, common.ErrPermissionDenied
		}
		doc.comments[i].Text = text
		doc.comments[i].UpdatedAt = time.Now().UnixMilli()
		edited := doc.comments[i]
		if err := doc.save(ctx, doc.comments); err != nil {
			return nil, err
		}
		return &edited, nil
	}
	return nil, common.ErrNotFound
}

// DeleteComment removes the caller's own comment together with its direct
// replies. Replies-to-replies keep their records but become unreachable;
// rendering walks parent links and never finds them again.
func (s *Service) DeleteComment(ctx context.Context, entryID, commentID, userID string) error {
	doc, err := s.openComments(ctx, entryID)
	if err != nil {
		return err
	}

	found := false
	for _, c := range doc.comments {
		if c.ID == commentID {
			if c.UserID != userID {
				return common.ErrPermissionDenied
			}
			found = true
			break
		}
	}
	if !found {
		return common.ErrNotFound
	}

	kept := make([]models.Comment, 0, len(doc.comments))
	for _, c := range doc.comments {
		if c.ID == commentID || c.ParentID == commentID {
			continue
		}
		kept = append(kept, c)
	}
	return doc.save(ctx, kept)
}
