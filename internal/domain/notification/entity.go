package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle   = errors.New("notification title cannot be empty")
	ErrNotRecipient = errors.New("notification does not belong to this recipient")
)

// QuoteRequestPayload is the structured data attached to a quote_request
// notification, consumed by the provider inbox UI.
type QuoteRequestPayload struct {
	QuoteID    uuid.UUID `json:"quote_id"`
	ItemName   string    `json:"item_name"`
	ClientName string    `json:"client_name"`
	Quantity   *int32    `json:"quantity,omitempty"`
	Message    string    `json:"message,omitempty"`
}

type Notification struct {
	id          uuid.UUID
	recipientID uuid.UUID
	kind        Type
	title       string
	message     string
	isRead      bool
	data        []byte
	createdAt   time.Time
	readAt      *time.Time
}

func New(recipientID uuid.UUID, kind Type, title, message string, data []byte, now time.Time) (*Notification, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	return &Notification{
		id:          uuid.New(),
		recipientID: recipientID,
		kind:        kind,
		title:       title,
		message:     message,
		data:        data,
		createdAt:   now,
	}, nil
}

// MarkRead is recipient-gated; marking an already-read notification is a
// no-op rather than an error.
func (n *Notification) MarkRead(recipientID uuid.UUID, now time.Time) error {
	if n.recipientID != recipientID {
		return ErrNotRecipient
	}
	if n.isRead {
		return nil
	}
	n.isRead = true
	n.readAt = &now
	return nil
}

func (n *Notification) ID() uuid.UUID          { return n.id }
func (n *Notification) RecipientID() uuid.UUID { return n.recipientID }
func (n *Notification) Kind() Type             { return n.kind }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Message() string        { return n.message }
func (n *Notification) IsRead() bool           { return n.isRead }
func (n *Notification) Data() []byte           { return n.data }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }
func (n *Notification) ReadAt() *time.Time     { return n.readAt }
