package repository

import (
	"context"
	"time"

	"vantage-backend/internal/domain/notification"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const insertNotificationQuery = `
INSERT INTO notifications (id, recipient_id, type, title, message, is_read, data, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertNotificationQuery,
		n.ID(), n.RecipientID(), n.Kind().String(), n.Title(), n.Message(),
		n.IsRead(), n.Data(), n.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert notification", err)
	}
	return n.ID(), nil
}

// Marking an already-read notification matches the row again so the call
// stays idempotent; read_at keeps its original value.
const markReadQuery = `
UPDATE notifications SET is_read = TRUE, read_at = coalesce(read_at, $3)
WHERE id = $1 AND recipient_id = $2
`

func (r *NotificationRepository) MarkRead(ctx context.Context, tx db.DBTX, id, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markReadQuery, id, recipientID, readAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notification read", err)
	}
	return tag.RowsAffected(), nil
}

const markAllReadQuery = `
UPDATE notifications SET is_read = TRUE, read_at = $2
WHERE recipient_id = $1 AND is_read = FALSE
`

func (r *NotificationRepository) MarkAllRead(ctx context.Context, tx db.DBTX, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markAllReadQuery, recipientID, readAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}
