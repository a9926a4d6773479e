package commands

import (
	"context"
	"fmt"
	"log/slog"
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
	ErrNotClient               = errs.New("only clients can perform this action")
	ErrProviderNotFound        = errs.New("provider not found")
	ErrItemNotFound            = errs.New("catalog item not found")
	ErrInvalidItemType         = errs.New("invalid item type")
	ErrBranchNotFound          = errs.New("branch not found")
	ErrBranchNotAllowed        = errs.New("branch does not belong to the client's company")
	ErrQuoteNotFound           = errs.New("quote request not found")
	ErrAccessDenied            = errs.New("access denied")
	ErrEmptyFile               = errs.New("no file provided")
	ErrQuoteAlreadyCancelled   = errs.New("quote request is cancelled")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateRequestParams struct {
	ProviderID uuid.UUID
	ItemID     uuid.UUID
	ItemType   string
	Quantity   *int32
	Message    string
	BranchID   *uuid.UUID
}

type QuoteCommands interface {
	CreateRequest(ctx context.Context, clientUserID uuid.UUID, params CreateRequestParams) (*quote.Request, error)
	AttachFile(ctx context.Context, quoteID, uploaderID uuid.UUID, file UploadedFile) (*quote.Attachment, error)
	CancelRequest(ctx context.Context, quoteID, clientUserID uuid.UUID) error
}

type QuoteRequestCreatedEmitter interface {
	EmitQuoteRequestCreated(ctx context.Context, quoteID uuid.UUID) error
}

type quoteCommandsImpl struct {
	quoteRepo QuoteRepository
	quotes    queries.QuoteReadStore
	users     UserReadStore
	providers queries.ProviderReadStore
	catalog   CatalogReadStore
	branches  BranchReadStore
	files     FileStore
	emitter   QuoteRequestCreatedEmitter
	pool      *pgxpool.Pool
	clock     clock.Clock
}

func NewQuoteCommands(
	quoteRepo QuoteRepository,
	quotes queries.QuoteReadStore,
	users UserReadStore,
	providers queries.ProviderReadStore,
	catalog CatalogReadStore,
	branches BranchReadStore,
	files FileStore,
	emitter QuoteRequestCreatedEmitter,
	pool *pgxpool.Pool,
	clock clock.Clock,
) QuoteCommands {
	return &quoteCommandsImpl{
		quoteRepo: quoteRepo,
		quotes:    quotes,
		users:     users,
		providers: providers,
		catalog:   catalog,
		branches:  branches,
		files:     files,
		emitter:   emitter,
		pool:      pool,
		clock:     clock,
	}
}

func (c *quoteCommandsImpl) CreateRequest(ctx context.Context, clientUserID uuid.UUID, params CreateRequestParams) (*quote.Request, error) {
	client, err := c.users.FindByID(ctx, clientUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if client.Role != user.RoleClient.String() {
		return nil, ErrNotClient
	}

	itemType, err := quote.NewItemType(params.ItemType)
	if err != nil {
		return nil, ErrInvalidItemType
	}

	if _, err := c.providers.FindByID(ctx, params.ProviderID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	item, err := c.findItem(ctx, params.ItemID, itemType)
	if err != nil {
		return nil, err
	}

	branchID, err := c.resolveBranch(ctx, client, params.BranchID)
	if err != nil {
		return nil, err
	}

	request, err := quote.NewRequest(
		clientUserID,
		branchID,
		params.ProviderID,
		params.ItemID,
		itemType,
		item.Name,
		params.Quantity,
		params.Message,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.quoteRepo.CreateRequest(ctx, tx, request)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The notification is isolated from the committed create: its failure is
	// logged and swallowed, never surfaced to the client.
	if err := c.emitter.EmitQuoteRequestCreated(ctx, request.ID()); err != nil {
		slog.Warn("failed to emit quote request notification",
			"quote_id", request.ID(), "error", err)
	}

	return request, nil
}

func (c *quoteCommandsImpl) findItem(ctx context.Context, itemID uuid.UUID, itemType quote.ItemType) (*queries.CatalogItemSnapshot, error) {
	var (
		item *queries.CatalogItemSnapshot
		err  error
	)
	switch itemType {
	case quote.ItemTypeProduct:
		item, err = c.catalog.FindProductByID(ctx, itemID)
	case quote.ItemTypeService:
		item, err = c.catalog.FindServiceByID(ctx, itemID)
	default:
		return nil, ErrInvalidItemType
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return item, nil
}

func (c *quoteCommandsImpl) resolveBranch(ctx context.Context, client *queries.UserSnapshot, branchID *uuid.UUID) (*uuid.UUID, error) {
	if branchID == nil {
		return client.BranchID, nil
	}

	branch, err := c.branches.FindByID(ctx, *branchID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if client.CompanyID == nil || branch.CompanyID != *client.CompanyID {
		return nil, ErrBranchNotAllowed
	}
	return branchID, nil
}

func (c *quoteCommandsImpl) AttachFile(ctx context.Context, quoteID, uploaderID uuid.UUID, file UploadedFile) (*quote.Attachment, error) {
	snapshot, err := c.authorizeParty(ctx, quoteID, uploaderID)
	if err != nil {
		return nil, err
	}

	if file.Content == nil || strings.TrimSpace(file.Filename) == "" || file.Size == 0 {
		return nil, ErrEmptyFile
	}

	storedName := fmt.Sprintf("%s_%s", c.clock.Now().Format("20060102_150405"), filepath.Base(file.Filename))
	fileURL, err := c.files.Save(ctx, storedName, file.Content)
	if err != nil {
		return nil, errs.Wrap(err, "failed to store attachment")
	}

	attachment, err := quote.NewAttachment(snapshot.ID, fileURL, file.Filename)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.quoteRepo.CreateAttachment(ctx, tx, attachment)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return attachment, nil
}

func (c *quoteCommandsImpl) CancelRequest(ctx context.Context, quoteID, clientUserID uuid.UUID) error {
	snapshot, err := c.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrQuoteNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snapshot.ClientUserID != clientUserID {
		return ErrAccessDenied
	}

	request := reconstructFromSnapshot(snapshot)
	if err := request.Cancel(); err != nil {
		return errs.Mark(err, ErrQuoteAlreadyCancelled)
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, c.quoteRepo.UpdateStatus(ctx, tx, quoteID, request.Status(), nil)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// authorizeParty admits the owning client or the addressed provider's user.
func (c *quoteCommandsImpl) authorizeParty(ctx context.Context, quoteID, requesterID uuid.UUID) (*queries.RequestSnapshot, error) {
	snapshot, err := c.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if snapshot.ClientUserID == requesterID {
		return snapshot, nil
	}

	provider, err := c.providers.FindByUserID(ctx, requesterID)
	if err == nil && provider.ID == snapshot.ProviderID {
		return snapshot, nil
	}
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil, ErrAccessDenied
}

func reconstructFromSnapshot(s *queries.RequestSnapshot) *quote.Request {
	return quote.ReconstructRequest(
		s.ID,
		s.ClientUserID,
		s.ClientBranchID,
		s.ProviderID,
		s.ItemID,
		quote.ItemType(s.ItemType),
		s.ItemNameSnapshot,
		s.Quantity,
		s.Message,
		quote.Status(s.Status),
		s.CreatedAt,
		s.RespondedAt,
	)
}
