package commands

import (
	"context"
	"encoding/json"

	"vantage-backend/internal/domain/notification"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/pkg/clock"
	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotificationNotFound = errs.New("notification not found")

type NotificationCommands interface {
	QuoteRequestCreatedEmitter
	MarkRead(ctx context.Context, notificationID, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationCommandsImpl struct {
	notifRepo NotificationRepository
	quotes    queries.QuoteReadStore
	users     UserReadStore
	providers queries.ProviderReadStore
	pool      *pgxpool.Pool
	clock     clock.Clock
}

func NewNotificationCommands(
	notifRepo NotificationRepository,
	quotes queries.QuoteReadStore,
	users UserReadStore,
	providers queries.ProviderReadStore,
	pool *pgxpool.Pool,
	clock clock.Clock,
) NotificationCommands {
	return &notificationCommandsImpl{
		notifRepo: notifRepo,
		quotes:    quotes,
		users:     users,
		providers: providers,
		pool:      pool,
		clock:     clock,
	}
}

// EmitQuoteRequestCreated notifies the addressed provider of a freshly created
// request. Callers treat any returned error as a logging concern only.
func (c *notificationCommandsImpl) EmitQuoteRequestCreated(ctx context.Context, quoteID uuid.UUID) error {
	snapshot, err := c.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		return errs.Wrap(err, "failed to load quote request for notification")
	}

	provider, err := c.providers.FindByID(ctx, snapshot.ProviderID)
	if err != nil {
		return errs.Wrap(err, "failed to resolve notification recipient")
	}

	clientName := "A client"
	if client, err := c.users.FindByID(ctx, snapshot.ClientUserID); err == nil && client.FullName != "" {
		clientName = client.FullName
	}

	payload, err := json.Marshal(notification.QuoteRequestPayload{
		QuoteID:    snapshot.ID,
		ItemName:   snapshot.ItemNameSnapshot,
		ClientName: clientName,
		Quantity:   snapshot.Quantity,
		Message:    snapshot.Message,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}

	n, err := notification.New(
		provider.UserID,
		notification.TypeQuoteRequest,
		"New quote request",
		clientName+" requested a quote for "+snapshot.ItemNameSnapshot,
		payload,
		c.clock.Now(),
	)
	if err != nil {
		return errs.Wrap(err, "failed to build notification")
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.notifRepo.Create(ctx, tx, n)
	})
	if err != nil {
		return errs.Wrap(err, "failed to persist notification")
	}
	return nil
}

func (c *notificationCommandsImpl) MarkRead(ctx context.Context, notificationID, recipientID uuid.UUID) error {
	affected, err := db.RunInTx(ctx, c.pool, func(tx db.DBTX) (int64, error) {
		return c.notifRepo.MarkRead(ctx, tx, notificationID, recipientID, c.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrNotificationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (c *notificationCommandsImpl) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	affected, err := db.RunInTx(ctx, c.pool, func(tx db.DBTX) (int64, error) {
		return c.notifRepo.MarkAllRead(ctx, tx, recipientID, c.clock.Now())
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return affected, nil
}
