package commands

import (
	"context"
	"io"
	"time"

	"vantage-backend/internal/domain/notification"
	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side repository ports, implemented by internal/infra/repository.

type QuoteRepository interface {
	CreateRequest(ctx context.Context, tx db.DBTX, req *quote.Request) (uuid.UUID, error)
	CreateAttachment(ctx context.Context, tx db.DBTX, att *quote.Attachment) (uuid.UUID, error)
	CreateResponse(ctx context.Context, tx db.DBTX, res *quote.Response) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status quote.Status, respondedAt *time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) (uuid.UUID, error)
	MarkRead(ctx context.Context, tx db.DBTX, id, recipientID uuid.UUID, readAt time.Time) (int64, error)
	MarkAllRead(ctx context.Context, tx db.DBTX, recipientID uuid.UUID, readAt time.Time) (int64, error)
}

// Read ports for command-side validation.

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserSnapshot, error)
}

type CatalogReadStore interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error)
}

type BranchReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BranchSnapshot, error)
}

// UploadedFile is the transport-agnostic handle to an inbound multipart file.
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FileStore persists uploaded documents and returns the public URL they are
// served back under.
type FileStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
