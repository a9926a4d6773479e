//go:build unit

package queries

import (
	"context"
	"testing"

	"vantage-backend/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationReadStore struct {
	mock.Mock
}

func (m *MockNotificationReadStore) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]*NotificationView, error) {
	args := m.Called(ctx, recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*NotificationView), args.Error(1)
}

func TestNotificationQueries_Inbox(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("counts only unread notifications", func(t *testing.T) {
		store := new(MockNotificationReadStore)
		store.On("ListByRecipient", ctx, recipientID, int32(50)).Return([]*NotificationView{
			{ID: uuid.New(), Type: "quote_request", IsRead: false},
			{ID: uuid.New(), Type: "quote_request", IsRead: true},
			{ID: uuid.New(), Type: "system", IsRead: false},
		}, nil)

		inbox, err := NewNotificationQueries(store).Inbox(ctx, recipientID)
		require.NoError(t, err)
		assert.Len(t, inbox.Notifications, 3)
		assert.Equal(t, 2, inbox.UnreadCount)
	})

	t.Run("empty inbox", func(t *testing.T) {
		store := new(MockNotificationReadStore)
		store.On("ListByRecipient", ctx, recipientID, int32(50)).Return([]*NotificationView{}, nil)

		inbox, err := NewNotificationQueries(store).Inbox(ctx, recipientID)
		require.NoError(t, err)
		assert.Empty(t, inbox.Notifications)
		assert.Zero(t, inbox.UnreadCount)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := new(MockNotificationReadStore)
		store.On("ListByRecipient", ctx, recipientID, int32(50)).Return(nil, errs.New("db down"))

		_, err := NewNotificationQueries(store).Inbox(ctx, recipientID)
		assert.Error(t, err)
	})
}
