package response

import (
	"time"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteRequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProviderID  uuid.UUID  `json:"provider_id"`
	ItemID      uuid.UUID  `json:"item_id"`
	ItemType    string     `json:"item_type"`
	ItemName    string     `json:"item_name"`
	Quantity    *int32     `json:"quantity,omitempty"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func FromQuoteRequest(r *quote.Request) *QuoteRequestResponse {
	return &QuoteRequestResponse{
		ID:          r.ID(),
		ProviderID:  r.ProviderID(),
		ItemID:      r.ItemID(),
		ItemType:    r.ItemType().String(),
		ItemName:    r.ItemNameSnapshot(),
		Quantity:    r.Quantity(),
		Message:     r.Message(),
		Status:      r.Status().String(),
		BranchID:    r.ClientBranchID(),
		CreatedAt:   r.CreatedAt(),
		RespondedAt: r.RespondedAt(),
	}
}

type AttachmentResponse struct {
	ID               uuid.UUID `json:"id"`
	QuoteRequestID   uuid.UUID `json:"quote_request_id"`
	FileURL          string    `json:"file_url"`
	OriginalFilename string    `json:"original_filename"`
}

func FromAttachment(a *quote.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:               a.ID(),
		QuoteRequestID:   a.QuoteRequestID(),
		FileURL:          a.FileURL(),
		OriginalFilename: a.OriginalFilename(),
	}
}

type QuoteResponseCreated struct {
	ID                  uuid.UUID `json:"id"`
	QuoteRequestID      uuid.UUID `json:"quote_request_id"`
	ProviderID          uuid.UUID `json:"provider_id"`
	DocumentURL         string    `json:"response_document_url"`
	TotalPrice          *float64  `json:"total_price,omitempty"`
	Currency            *string   `json:"currency,omitempty"`
	CertificationsCount *int32    `json:"certifications_count,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func FromQuoteResponse(r *quote.Response) *QuoteResponseCreated {
	return &QuoteResponseCreated{
		ID:                  r.ID(),
		QuoteRequestID:      r.QuoteRequestID(),
		ProviderID:          r.ProviderID(),
		DocumentURL:         r.DocumentURL(),
		TotalPrice:          r.TotalPrice(),
		Currency:            r.Currency(),
		CertificationsCount: r.CertificationsCount(),
		CreatedAt:           r.CreatedAt(),
	}
}

// AIAnalysisPlaceholder fills the per-response ai_analysis block the listing
// contract carries; per-response commentary lives in the full-analysis
// report, not here.
type AIAnalysisPlaceholder struct {
	Resumen    string `json:"resumen"`
	Sugerencia string `json:"sugerencia"`
}

type QuoteResponseItem struct {
	ID                  uuid.UUID             `json:"id"`
	ProviderID          uuid.UUID             `json:"provider_id"`
	ProviderName        string                `json:"provider_name"`
	DocumentURL         string                `json:"response_document_url"`
	TotalPrice          float64               `json:"total_price"`
	Currency            string                `json:"currency"`
	CertificationsCount int32                 `json:"certifications_count"`
	ExtractedData       *quote.ExtractedData  `json:"extracted_data,omitempty"`
	AIAnalysis          AIAnalysisPlaceholder `json:"ai_analysis"`
	CreatedAt           time.Time             `json:"created_at"`
}

// FromResponseView normalizes optional fields for the listing contract:
// a missing price reads as 0 and a missing currency as USD.
func FromResponseView(v *queries.ResponseView) *QuoteResponseItem {
	item := &QuoteResponseItem{
		ID:            v.ID,
		ProviderID:    v.ProviderID,
		ProviderName:  v.ProviderName,
		DocumentURL:   v.DocumentURL,
		Currency:      "USD",
		ExtractedData: v.ExtractedData,
		AIAnalysis: AIAnalysisPlaceholder{
			Resumen:    "Análisis disponible en el informe completo",
			Sugerencia: "Consulte el análisis completo de la cotización",
		},
		CreatedAt: v.CreatedAt,
	}
	if v.TotalPrice != nil {
		item.TotalPrice = *v.TotalPrice
	}
	if v.Currency != nil && *v.Currency != "" {
		item.Currency = *v.Currency
	}
	if v.CertificationsCount != nil {
		item.CertificationsCount = *v.CertificationsCount
	}
	return item
}

func FromResponseViews(views []*queries.ResponseView) []*QuoteResponseItem {
	items := make([]*QuoteResponseItem, len(views))
	for i, v := range views {
		items[i] = FromResponseView(v)
	}
	return items
}
