package readstore

import (
	"context"
	"encoding/json"

	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(db db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

const listByRecipientQuery = `
SELECT id, type, title, message, is_read, data, created_at, read_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC
LIMIT $2
`

func (r *NotificationReadStore) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]*queries.NotificationView, error) {
	rows, err := r.db.Query(ctx, listByRecipientQuery, recipientID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var views []*queries.NotificationView
	for rows.Next() {
		var (
			v   queries.NotificationView
			raw []byte
		)
		if err := rows.Scan(
			&v.ID, &v.Type, &v.Title, &v.Message, &v.IsRead, &raw, &v.CreatedAt, &v.ReadAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		v.Data = json.RawMessage(raw)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification rows", err)
	}
	return views, nil
}
