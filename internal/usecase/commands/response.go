package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/domain/user"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/pkg/clock"
	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotProvider             = errs.New("only providers can submit responses")
	ErrProviderProfileNotFound = errs.New("provider profile not found")
	ErrNotAddressedProvider    = errs.New("quote request is addressed to another provider")
)

type SubmitResponseParams struct {
	TotalPrice          *float64
	Currency            *string
	CertificationsCount *int32
	File                UploadedFile
}

type ResponseCommands interface {
	SubmitResponse(ctx context.Context, quoteID, providerUserID uuid.UUID, params SubmitResponseParams) (*quote.Response, error)
}

type responseCommandsImpl struct {
	quoteRepo QuoteRepository
	quotes    queries.QuoteReadStore
	users     UserReadStore
	providers queries.ProviderReadStore
	files     FileStore
	pool      *pgxpool.Pool
	clock     clock.Clock
}

func NewResponseCommands(
	quoteRepo QuoteRepository,
	quotes queries.QuoteReadStore,
	users UserReadStore,
	providers queries.ProviderReadStore,
	files FileStore,
	pool *pgxpool.Pool,
	clock clock.Clock,
) ResponseCommands {
	return &responseCommandsImpl{
		quoteRepo: quoteRepo,
		quotes:    quotes,
		users:     users,
		providers: providers,
		files:     files,
		pool:      pool,
		clock:     clock,
	}
}

func (c *responseCommandsImpl) SubmitResponse(ctx context.Context, quoteID, providerUserID uuid.UUID, params SubmitResponseParams) (*quote.Response, error) {
	submitter, err := c.users.FindByID(ctx, providerUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if submitter.Role != user.RoleProvider.String() {
		return nil, ErrNotProvider
	}

	provider, err := c.providers.FindByUserID(ctx, providerUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProviderProfileNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	snapshot, err := c.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	request := reconstructFromSnapshot(snapshot)
	if !request.IsAddressedTo(provider.ID) {
		return nil, ErrNotAddressedProvider
	}
	if request.Status() == quote.StatusCancelled {
		return nil, ErrQuoteAlreadyCancelled
	}

	file := params.File
	if file.Content == nil || strings.TrimSpace(file.Filename) == "" || file.Size == 0 {
		return nil, ErrEmptyFile
	}

	now := c.clock.Now()
	storedName := fmt.Sprintf("%s_%s", now.Format("20060102_150405"), filepath.Base(file.Filename))
	documentURL, err := c.files.Save(ctx, storedName, file.Content)
	if err != nil {
		return nil, errs.Wrap(err, "failed to store response document")
	}

	response, err := quote.NewResponse(
		request,
		provider.ID,
		documentURL,
		params.TotalPrice,
		params.Currency,
		params.CertificationsCount,
		now,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	changed, err := request.MarkResponded(now)
	if err != nil {
		return nil, errs.Mark(err, ErrQuoteAlreadyCancelled)
	}

	// The response row and the pending->responded flip commit atomically;
	// follow-up responses skip the status update.
	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		id, err := c.quoteRepo.CreateResponse(ctx, tx, response)
		if err != nil {
			return uuid.Nil, err
		}
		if changed {
			if err := c.quoteRepo.UpdateStatus(ctx, tx, quoteID, request.Status(), request.RespondedAt()); err != nil {
				return uuid.Nil, err
			}
		}
		return id, nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return response, nil
}
