//go:build unit

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
	"github.com/stretchr/testify/mock"
)

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) CreateRequest(ctx context.Context, tx db.DBTX, req *quote.Request) (uuid.UUID, error) {
	args := m.Called(ctx, tx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQuoteRepository) CreateAttachment(ctx context.Context, tx db.DBTX, att *quote.Attachment) (uuid.UUID, error) {
	args := m.Called(ctx, tx, att)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQuoteRepository) CreateResponse(ctx context.Context, tx db.DBTX, res *quote.Response) (uuid.UUID, error) {
	args := m.Called(ctx, tx, res)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQuoteRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status quote.Status, respondedAt *time.Time) error {
	args := m.Called(ctx, tx, id, status, respondedAt)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	args := m.Called(ctx, tx, n)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, tx db.DBTX, id, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	args := m.Called(ctx, tx, id, recipientID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, tx db.DBTX, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	args := m.Called(ctx, tx, recipientID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuoteReadStore struct {
	mock.Mock
}

func (m *MockQuoteReadStore) FindRequestByID(ctx context.Context, id uuid.UUID) (*queries.RequestSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestSnapshot), args.Error(1)
}

func (m *MockQuoteReadStore) FindDetailsByID(ctx context.Context, id uuid.UUID) (*queries.RequestDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestDetails), args.Error(1)
}

func (m *MockQuoteReadStore) ListByClient(ctx context.Context, clientUserID uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, clientUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockQuoteReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*queries.ReceivedRequestItem, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ReceivedRequestItem), args.Error(1)
}

func (m *MockQuoteReadStore) ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]queries.AttachmentView, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AttachmentView), args.Error(1)
}

func (m *MockQuoteReadStore) ListResponses(ctx context.Context, quoteID uuid.UUID) ([]*queries.ResponseView, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ResponseView), args.Error(1)
}

type MockUserReadStore struct {
	mock.Mock
}

func (m *MockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.UserSnapshot), args.Error(1)
}

type MockProviderReadStore struct {
	mock.Mock
}

func (m *MockProviderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProviderSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.ProviderSnapshot), args.Error(1)
}

func (m *MockProviderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.ProviderSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.ProviderSnapshot), args.Error(1)
}

type MockCatalogReadStore struct {
	mock.Mock
}

func (m *MockCatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.CatalogItemSnapshot), args.Error(1)
}

func (m *MockCatalogReadStore) FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.CatalogItemSnapshot), args.Error(1)
}

type MockBranchReadStore struct {
	mock.Mock
}

func (m *MockBranchReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BranchSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.BranchSnapshot), args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) EmitQuoteRequestCreated(ctx context.Context, quoteID uuid.UUID) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}
