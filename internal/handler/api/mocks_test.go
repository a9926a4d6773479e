//go:build unit

package api_test

import (
	"context"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockQuoteCommands struct {
	mock.Mock
}

func (m *MockQuoteCommands) CreateRequest(ctx context.Context, clientUserID uuid.UUID, params commands.CreateRequestParams) (*quote.Request, error) {
	args := m.Called(ctx, clientUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Request), args.Error(1)
}

func (m *MockQuoteCommands) AttachFile(ctx context.Context, quoteID, uploaderID uuid.UUID, file commands.UploadedFile) (*quote.Attachment, error) {
	args := m.Called(ctx, quoteID, uploaderID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Attachment), args.Error(1)
}

func (m *MockQuoteCommands) CancelRequest(ctx context.Context, quoteID, clientUserID uuid.UUID) error {
	args := m.Called(ctx, quoteID, clientUserID)
	return args.Error(0)
}

type MockResponseCommands struct {
	mock.Mock
}

func (m *MockResponseCommands) SubmitResponse(ctx context.Context, quoteID, providerUserID uuid.UUID, params commands.SubmitResponseParams) (*quote.Response, error) {
	args := m.Called(ctx, quoteID, providerUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Response), args.Error(1)
}

type MockNotificationCommands struct {
	mock.Mock
}

func (m *MockNotificationCommands) EmitQuoteRequestCreated(ctx context.Context, quoteID uuid.UUID) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockNotificationCommands) MarkRead(ctx context.Context, notificationID, recipientID uuid.UUID) error {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Error(0)
}

func (m *MockNotificationCommands) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuoteQueries struct {
	mock.Mock
}

func (m *MockQuoteQueries) ListForClient(ctx context.Context, clientUserID uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, clientUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockQuoteQueries) ListForProvider(ctx context.Context, providerUserID uuid.UUID) ([]*queries.ReceivedRequestItem, error) {
	args := m.Called(ctx, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ReceivedRequestItem), args.Error(1)
}

func (m *MockQuoteQueries) GetDetails(ctx context.Context, quoteID, requesterID uuid.UUID) (*queries.RequestDetails, error) {
	args := m.Called(ctx, quoteID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestDetails), args.Error(1)
}

func (m *MockQuoteQueries) ListAttachments(ctx context.Context, quoteID, requesterID uuid.UUID) ([]queries.AttachmentView, error) {
	args := m.Called(ctx, quoteID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AttachmentView), args.Error(1)
}

func (m *MockQuoteQueries) ListResponses(ctx context.Context, quoteID, requesterID uuid.UUID) ([]*queries.ResponseView, error) {
	args := m.Called(ctx, quoteID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ResponseView), args.Error(1)
}

type MockNotificationQueries struct {
	mock.Mock
}

func (m *MockNotificationQueries) Inbox(ctx context.Context, recipientID uuid.UUID) (*queries.NotificationInbox, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.NotificationInbox), args.Error(1)
}
