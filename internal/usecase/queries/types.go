package queries

import (
	"encoding/json"
	"time"

	"vantage-backend/internal/domain/quote"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RequestListItem struct {
	ID               uuid.UUID `json:"id"`
	ProviderID       uuid.UUID `json:"provider_id"`
	ProviderName     string    `json:"provider_name"`
	ItemName         string    `json:"item_name"`
	ItemType         string    `json:"item_type"`
	Quantity         *int32    `json:"quantity,omitempty"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	AttachmentsCount int64     `json:"attachments_count"`
}

type ReceivedRequestItem struct {
	ID               uuid.UUID `json:"id"`
	ClientName       string    `json:"client_name"`
	ClientCompany    *string   `json:"client_company,omitempty"`
	ClientBranch     *string   `json:"client_branch,omitempty"`
	ItemName         string    `json:"item_name"`
	ItemType         string    `json:"item_type"`
	Quantity         *int32    `json:"quantity,omitempty"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	AttachmentsCount int64     `json:"attachments_count"`
}

type ClientInfo struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"company,omitempty"`
	Branch  *string `json:"branch,omitempty"`
}

type ProviderInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemInfo struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	Name string    `json:"name"`
}

type AttachmentView struct {
	ID               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	FileURL          string    `json:"file_url"`
}

type RequestDetails struct {
	ID          uuid.UUID        `json:"id"`
	Client      ClientInfo       `json:"client"`
	Provider    ProviderInfo     `json:"provider"`
	Item        ItemInfo         `json:"item"`
	Quantity    *int32           `json:"quantity,omitempty"`
	Message     string           `json:"message"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	Attachments []AttachmentView `json:"attachments"`
}

type ResponseView struct {
	ID                  uuid.UUID            `json:"id"`
	ProviderID          uuid.UUID            `json:"provider_id"`
	ProviderName        string               `json:"provider_name"`
	DocumentURL         string               `json:"response_document_url"`
	TotalPrice          *float64             `json:"total_price,omitempty"`
	Currency            *string              `json:"currency,omitempty"`
	CertificationsCount *int32               `json:"certifications_count,omitempty"`
	ExtractedData       *quote.ExtractedData `json:"extracted_data,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	IsRead    bool            `json:"is_read"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
}

type CatalogItemView struct {
	ID               uuid.UUID `json:"id"`
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	TechnicalDetails *string   `json:"technical_details,omitempty"`
	SKU              *string   `json:"sku,omitempty"`
	Modality         *string   `json:"modality,omitempty"`
	Category         string    `json:"category"`
	ProviderName     string    `json:"provider"`
	IsFeatured       bool      `json:"is_featured"`
}

// Snapshots for command-side reads and authorization checks.

type RequestSnapshot struct {
	ID               uuid.UUID
	ClientUserID     uuid.UUID
	ClientBranchID   *uuid.UUID
	ProviderID       uuid.UUID
	ItemID           uuid.UUID
	ItemType         string
	ItemNameSnapshot string
	Quantity         *int32
	Message          string
	Status           string
	CreatedAt        time.Time
	RespondedAt      *time.Time
}

type ProviderSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyName string
}

type UserSnapshot struct {
	ID          uuid.UUID
	Email       string
	FullName    string
	Role        string
	CompanyID   *uuid.UUID
	CompanyName *string
	BranchID    *uuid.UUID
}

type BranchSnapshot struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	BranchName string
}

type CatalogItemSnapshot struct {
	ID   uuid.UUID
	Name string
}
