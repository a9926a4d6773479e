package queries

import (
	"context"

	"vantage-backend/internal/infra"
	"vantage-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound = errs.New("quote request not found")
	ErrAccessDenied  = errs.New("access denied")
)

type QuoteReadStore interface {
	FindRequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	FindDetailsByID(ctx context.Context, id uuid.UUID) (*RequestDetails, error)
	ListByClient(ctx context.Context, clientUserID uuid.UUID) ([]*RequestListItem, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*ReceivedRequestItem, error)
	ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]AttachmentView, error)
	ListResponses(ctx context.Context, quoteID uuid.UUID) ([]*ResponseView, error)
}

type ProviderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProviderSnapshot, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ProviderSnapshot, error)
}

type QuoteQueries interface {
	ListForClient(ctx context.Context, clientUserID uuid.UUID) ([]*RequestListItem, error)
	ListForProvider(ctx context.Context, providerUserID uuid.UUID) ([]*ReceivedRequestItem, error)
	GetDetails(ctx context.Context, quoteID, requesterID uuid.UUID) (*RequestDetails, error)
	ListAttachments(ctx context.Context, quoteID, requesterID uuid.UUID) ([]AttachmentView, error)
	ListResponses(ctx context.Context, quoteID, requesterID uuid.UUID) ([]*ResponseView, error)
}

type quoteQueriesImpl struct {
	quotes    QuoteReadStore
	providers ProviderReadStore
}

func NewQuoteQueries(quotes QuoteReadStore, providers ProviderReadStore) QuoteQueries {
	return &quoteQueriesImpl{quotes: quotes, providers: providers}
}

func (q *quoteQueriesImpl) ListForClient(ctx context.Context, clientUserID uuid.UUID) ([]*RequestListItem, error) {
	return q.quotes.ListByClient(ctx, clientUserID)
}

func (q *quoteQueriesImpl) ListForProvider(ctx context.Context, providerUserID uuid.UUID) ([]*ReceivedRequestItem, error) {
	provider, err := q.providers.FindByUserID(ctx, providerUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	return q.quotes.ListByProvider(ctx, provider.ID)
}

func (q *quoteQueriesImpl) GetDetails(ctx context.Context, quoteID, requesterID uuid.UUID) (*RequestDetails, error) {
	if _, err := q.authorizeAccess(ctx, quoteID, requesterID); err != nil {
		return nil, err
	}
	return q.quotes.FindDetailsByID(ctx, quoteID)
}

func (q *quoteQueriesImpl) ListAttachments(ctx context.Context, quoteID, requesterID uuid.UUID) ([]AttachmentView, error) {
	if _, err := q.authorizeAccess(ctx, quoteID, requesterID); err != nil {
		return nil, err
	}
	return q.quotes.ListAttachments(ctx, quoteID)
}

func (q *quoteQueriesImpl) ListResponses(ctx context.Context, quoteID, requesterID uuid.UUID) ([]*ResponseView, error) {
	if _, err := q.authorizeAccess(ctx, quoteID, requesterID); err != nil {
		return nil, err
	}
	return q.quotes.ListResponses(ctx, quoteID)
}

// authorizeAccess admits the owning client or the addressed provider's user.
func (q *quoteQueriesImpl) authorizeAccess(ctx context.Context, quoteID, requesterID uuid.UUID) (*RequestSnapshot, error) {
	snapshot, err := q.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	if snapshot.ClientUserID == requesterID {
		return snapshot, nil
	}

	provider, err := q.providers.FindByUserID(ctx, requesterID)
	if err == nil && provider.ID == snapshot.ProviderID {
		return snapshot, nil
	}
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	return nil, ErrAccessDenied
}
