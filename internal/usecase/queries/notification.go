package queries

import (
	"context"

	"github.com/google/uuid"
)

type NotificationInbox struct {
	Notifications []*NotificationView `json:"notifications"`
	UnreadCount   int                 `json:"unread_count"`
}

type NotificationReadStore interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]*NotificationView, error)
}

type NotificationQueries interface {
	Inbox(ctx context.Context, recipientID uuid.UUID) (*NotificationInbox, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
}

func NewNotificationQueries(store NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{store: store}
}

func (q *notificationQueriesImpl) Inbox(ctx context.Context, recipientID uuid.UUID) (*NotificationInbox, error) {
	views, err := q.store.ListByRecipient(ctx, recipientID, 50)
	if err != nil {
		return nil, err
	}

	unread := 0
	for _, v := range views {
		if !v.IsRead {
			unread++
		}
	}

	return &NotificationInbox{Notifications: views, UnreadCount: unread}, nil
}
