//go:build unit

package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"vantage-backend/internal/pkg/clock"
	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type responseCommandMocks struct {
	repo      *MockQuoteRepository
	quotes    *MockQuoteReadStore
	users     *MockUserReadStore
	providers *MockProviderReadStore
	files     *MockFileStore
}

func newResponseCommands(t *testing.T) (ResponseCommands, *responseCommandMocks) {
	t.Helper()
	m := &responseCommandMocks{
		repo:      new(MockQuoteRepository),
		quotes:    new(MockQuoteReadStore),
		users:     new(MockUserReadStore),
		providers: new(MockProviderReadStore),
		files:     new(MockFileStore),
	}
	fixed := clock.NewMockClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	cmd := NewResponseCommands(m.repo, m.quotes, m.users, m.providers, m.files, nil, fixed)
	return cmd, m
}

func providerUserSnapshot(id uuid.UUID) *queries.UserSnapshot {
	return &queries.UserSnapshot{
		ID:       id,
		Email:    "ventas@hidraulicasur.com",
		FullName: "Jorge Paredes",
		Role:     "provider",
	}
}

func pendingSnapshot(quoteID, providerID uuid.UUID) *queries.RequestSnapshot {
	return &queries.RequestSnapshot{
		ID:               quoteID,
		ClientUserID:     uuid.New(),
		ProviderID:       providerID,
		ItemID:           uuid.New(),
		ItemType:         "product",
		ItemNameSnapshot: "Bomba hidráulica HX-200",
		Status:           "pending",
	}
}

func pdfUpload() UploadedFile {
	return UploadedFile{
		Filename: "cotizacion.pdf",
		Size:     2048,
		Content:  strings.NewReader("%PDF-1.4"),
	}
}

func TestResponseCommands_SubmitResponse(t *testing.T) {
	ctx := context.Background()
	quoteID := uuid.New()
	providerID := uuid.New()
	providerUserID := uuid.New()

	params := SubmitResponseParams{File: pdfUpload()}

	t.Run("client role is rejected", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		snap := providerUserSnapshot(providerUserID)
		snap.Role = "client"
		m.users.On("FindByID", ctx, providerUserID).Return(snap, nil)

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, params)
		assert.ErrorIs(t, err, ErrNotProvider)
	})

	t.Run("missing provider profile", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).Return(nil, notFoundErr())

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, params)
		assert.ErrorIs(t, err, ErrProviderProfileNotFound)
	})

	t.Run("unknown quote", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).
			Return(&queries.ProviderSnapshot{ID: providerID, UserID: providerUserID}, nil)
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(nil, notFoundErr())

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, params)
		assert.ErrorIs(t, err, ErrQuoteNotFound)
	})

	t.Run("request addressed to another provider", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).
			Return(&queries.ProviderSnapshot{ID: providerID, UserID: providerUserID}, nil)
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(pendingSnapshot(quoteID, uuid.New()), nil)

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, params)
		assert.ErrorIs(t, err, ErrNotAddressedProvider)
	})

	t.Run("cancelled request rejects responses", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		snap := pendingSnapshot(quoteID, providerID)
		snap.Status = "cancelled"
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).
			Return(&queries.ProviderSnapshot{ID: providerID, UserID: providerUserID}, nil)
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snap, nil)

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, params)
		assert.ErrorIs(t, err, ErrQuoteAlreadyCancelled)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).
			Return(&queries.ProviderSnapshot{ID: providerID, UserID: providerUserID}, nil)
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(pendingSnapshot(quoteID, providerID), nil)

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, SubmitResponseParams{})
		assert.ErrorIs(t, err, ErrEmptyFile)
		m.files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("document store failure surfaces before any write", func(t *testing.T) {
		cmd, m := newResponseCommands(t)
		m.users.On("FindByID", ctx, providerUserID).Return(providerUserSnapshot(providerUserID), nil)
		m.providers.On("FindByUserID", ctx, providerUserID).
			Return(&queries.ProviderSnapshot{ID: providerID, UserID: providerUserID}, nil)
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(pendingSnapshot(quoteID, providerID), nil)
		m.files.On("Save", ctx, mock.Anything, mock.Anything).Return("", errs.New("disk full"))

		_, err := cmd.SubmitResponse(ctx, quoteID, providerUserID, SubmitResponseParams{File: pdfUpload()})
		assert.Error(t, err)
		m.repo.AssertNotCalled(t, "CreateResponse", mock.Anything, mock.Anything, mock.Anything)
	})
}
