package social

import (
	"context"
	"time"

	"github.com/latted-app/latted/internal/ident"
	"github.com/latted-app/latted/internal/models"
)

// maxNotifications caps the local inbox; oldest items beyond the cap are
// discarded on insert.
const maxNotifications = 50

// notify inserts a notification at the front of the inbox. Failures are
// logged and dropped: a lost notification never fails the operation that
// produced it.
func (s *Service) notify(ctx context.Context, typ models.NotificationType, message, link string) {
	n := models.Notification{
		ID:        ident.NewID(),
		Type:      typ,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UnixMilli(),
	}

	ns, err := s.docs.LoadNotifications(ctx)
	if err == nil {
		ns = append([]models.Notification{n}, ns...)
		if len(ns) > maxNotifications {
			ns = ns[:maxNotifications]
		}
		err = s.docs.SaveNotifications(ctx, ns)
	}
	if err != nil {
		s.log.Warn(ctx, "failed to record notification", "type", typ, "err", err)
	}
}

// Notifications returns the inbox, newest first.
func (s *Service) Notifications(ctx context.Context) ([]models.Notification, error) {
	return s.docs.LoadNotifications(ctx)
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	ns, err := s.docs.LoadNotifications(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range ns {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flags one notification as read. Unknown ids are ignored.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	ns, err := s.docs.LoadNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range ns {
		if ns[i].ID == id {
			ns[i].Read = true
			break
		}
	}
	return s.docs.SaveNotifications(ctx, ns)
}

// MarkAllRead flags the whole inbox as read.
func (s *Service) MarkAllRead(ctx context.Context) error {
	ns, err := s.docs.LoadNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range ns {
		ns[i].Read = true
	}
	return s.docs.SaveNotifications(ctx, ns)
}
