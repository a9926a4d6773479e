package quote

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItemSnapshot  = errors.New("item name snapshot cannot be empty")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrEmptyDocumentURL   = errors.New("response document URL cannot be empty")
	ErrNegativeCertCount  = errors.New("certifications count cannot be negative")
	ErrEmptyAttachmentURL = errors.New("attachment file URL cannot be empty")
	ErrResponderMismatch  = errors.New("response provider does not match request provider")
)

// Request is a client's ask for pricing on one catalog item. The item name
// is snapshotted at creation and never re-derived from the live catalog.
type Request struct {
	id               uuid.UUID
	clientUserID     uuid.UUID
	clientBranchID   *uuid.UUID
	providerID       uuid.UUID
	itemID           uuid.UUID
	itemType         ItemType
	itemNameSnapshot string
	quantity         *int32
	message          string
	status           Status
	createdAt        time.Time
	respondedAt      *time.Time
}

func NewRequest(
	clientUserID uuid.UUID,
	clientBranchID *uuid.UUID,
	providerID uuid.UUID,
	itemID uuid.UUID,
	itemType ItemType,
	itemNameSnapshot string,
	quantity *int32,
	message string,
	now time.Time,
) (*Request, error) {
	if !itemType.IsValid() {
		return nil, ErrInvalidItemType
	}
	itemNameSnapshot = strings.TrimSpace(itemNameSnapshot)
	if itemNameSnapshot == "" {
		return nil, ErrEmptyItemSnapshot
	}
	if quantity != nil && *quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return &Request{
		id:               uuid.New(),
		clientUserID:     clientUserID,
		clientBranchID:   clientBranchID,
		providerID:       providerID,
		itemID:           itemID,
		itemType:         itemType,
		itemNameSnapshot: itemNameSnapshot,
		quantity:         quantity,
		message:          strings.TrimSpace(message),
		status:           StatusPending,
		createdAt:        now,
	}, nil
}

func ReconstructRequest(
	id, clientUserID uuid.UUID,
	clientBranchID *uuid.UUID,
	providerID, itemID uuid.UUID,
	itemType ItemType,
	itemNameSnapshot string,
	quantity *int32,
	message string,
	status Status,
	createdAt time.Time,
	respondedAt *time.Time,
) *Request {
	return &Request{
		id:               id,
		clientUserID:     clientUserID,
		clientBranchID:   clientBranchID,
		providerID:       providerID,
		itemID:           itemID,
		itemType:         itemType,
		itemNameSnapshot: itemNameSnapshot,
		quantity:         quantity,
		message:          message,
		status:           status,
		createdAt:        createdAt,
		respondedAt:      respondedAt,
	}
}

// MarkResponded records the arrival of a response. The first response flips
// pending to responded; later responses are additional offers and leave the
// request untouched. Returns whether a transition actually happened.
func (r *Request) MarkResponded(now time.Time) (bool, error) {
	if r.status == StatusResponded {
		return false, nil
	}
	next, err := r.status.Transition(StatusResponded)
	if err != nil {
		return false, err
	}
	r.status = next
	r.respondedAt = &now
	return true, nil
}

func (r *Request) Cancel() error {
	next, err := r.status.Transition(StatusCancelled)
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

func (r *Request) IsOwnedBy(clientUserID uuid.UUID) bool {
	return r.clientUserID == clientUserID
}

func (r *Request) IsAddressedTo(providerID uuid.UUID) bool {
	return r.providerID == providerID
}

func (r *Request) ID() uuid.UUID               { return r.id }
func (r *Request) ClientUserID() uuid.UUID     { return r.clientUserID }
func (r *Request) ClientBranchID() *uuid.UUID  { return r.clientBranchID }
func (r *Request) ProviderID() uuid.UUID       { return r.providerID }
func (r *Request) ItemID() uuid.UUID           { return r.itemID }
func (r *Request) ItemType() ItemType          { return r.itemType }
func (r *Request) ItemNameSnapshot() string    { return r.itemNameSnapshot }
func (r *Request) Quantity() *int32            { return r.quantity }
func (r *Request) Message() string             { return r.message }
func (r *Request) Status() Status              { return r.status }
func (r *Request) CreatedAt() time.Time        { return r.createdAt }
func (r *Request) RespondedAt() *time.Time     { return r.respondedAt }

// Response is one provider's priced reply to a request. A request can
// accumulate several responses; each is treated as a concurrently valid
// offer.
type Response struct {
	id                  uuid.UUID
	quoteRequestID      uuid.UUID
	providerID          uuid.UUID
	documentURL         string
	totalPrice          *float64
	currency            *string
	certificationsCount *int32
	extractedData       *ExtractedData
	createdAt           time.Time
}

func NewResponse(
	request *Request,
	providerID uuid.UUID,
	documentURL string,
	totalPrice *float64,
	currency *string,
	certificationsCount *int32,
	now time.Time,
) (*Response, error) {
	if !request.IsAddressedTo(providerID) {
		return nil, ErrResponderMismatch
	}
	if strings.TrimSpace(documentURL) == "" {
		return nil, ErrEmptyDocumentURL
	}
	if certificationsCount != nil && *certificationsCount < 0 {
		return nil, ErrNegativeCertCount
	}

	return &Response{
		id:                  uuid.New(),
		quoteRequestID:      request.ID(),
		providerID:          providerID,
		documentURL:         documentURL,
		totalPrice:          totalPrice,
		currency:            currency,
		certificationsCount: certificationsCount,
		createdAt:           now,
	}, nil
}

func (r *Response) ID() uuid.UUID               { return r.id }
func (r *Response) QuoteRequestID() uuid.UUID   { return r.quoteRequestID }
func (r *Response) ProviderID() uuid.UUID       { return r.providerID }
func (r *Response) DocumentURL() string         { return r.documentURL }
func (r *Response) TotalPrice() *float64        { return r.totalPrice }
func (r *Response) Currency() *string           { return r.currency }
func (r *Response) CertificationsCount() *int32 { return r.certificationsCount }
func (r *Response) ExtractedData() *ExtractedData {
	return r.extractedData
}
func (r *Response) CreatedAt() time.Time { return r.createdAt }

// Attachment is a supporting file either party tied to a request.
type Attachment struct {
	id               uuid.UUID
	quoteRequestID   uuid.UUID
	fileURL          string
	originalFilename string
}

func NewAttachment(quoteRequestID uuid.UUID, fileURL, originalFilename string) (*Attachment, error) {
	if strings.TrimSpace(fileURL) == "" {
		return nil, ErrEmptyAttachmentURL
	}
	return &Attachment{
		id:               uuid.New(),
		quoteRequestID:   quoteRequestID,
		fileURL:          fileURL,
		originalFilename: originalFilename,
	}, nil
}

func (a *Attachment) ID() uuid.UUID             { return a.id }
func (a *Attachment) QuoteRequestID() uuid.UUID { return a.quoteRequestID }
func (a *Attachment) FileURL() string           { return a.fileURL }
func (a *Attachment) OriginalFilename() string  { return a.originalFilename }
