package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type QuoteRepository struct{}

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{}
}

const insertRequestQuery = `
INSERT INTO quote_requests (
	id, client_user_id, client_branch_id, provider_id, item_id, item_type,
	item_name_snapshot, quantity, message, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *QuoteRepository) CreateRequest(ctx context.Context, tx db.DBTX, req *quote.Request) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertRequestQuery,
		req.ID(), req.ClientUserID(), req.ClientBranchID(), req.ProviderID(),
		req.ItemID(), req.ItemType().String(), req.ItemNameSnapshot(),
		req.Quantity(), req.Message(), req.Status().String(), req.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert quote request", err)
	}
	return req.ID(), nil
}

const insertAttachmentQuery = `
INSERT INTO quote_attachments (id, quote_request_id, file_url, original_filename, uploaded_at)
VALUES ($1, $2, $3, $4, now())
`

func (r *QuoteRepository) CreateAttachment(ctx context.Context, tx db.DBTX, att *quote.Attachment) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertAttachmentQuery,
		att.ID(), att.QuoteRequestID(), att.FileURL(), att.OriginalFilename(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert quote attachment", err)
	}
	return att.ID(), nil
}

const insertResponseQuery = `
INSERT INTO quote_responses (
	id, quote_request_id, provider_id, response_document_url,
	total_price, currency, certifications_count, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *QuoteRepository) CreateResponse(ctx context.Context, tx db.DBTX, res *quote.Response) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertResponseQuery,
		res.ID(), res.QuoteRequestID(), res.ProviderID(), res.DocumentURL(),
		res.TotalPrice(), res.Currency(), res.CertificationsCount(), res.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert quote response", err)
	}
	return res.ID(), nil
}

const updateStatusQuery = `
UPDATE quote_requests SET status = $2, responded_at = coalesce($3, responded_at)
WHERE id = $1
`

func (r *QuoteRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status quote.Status, respondedAt *time.Time) error {
	tag, err := tx.Exec(ctx, updateStatusQuery, id, status.String(), respondedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update quote request status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("quote request not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// AnalysisRepository covers the analysis engine's persistence: the per-quote
// report cache and per-response extraction results. Writes are single
// statements, so it runs against the pool directly.
type AnalysisRepository struct {
	db db.DBTX
}

func NewAnalysisRepository(db db.DBTX) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const getAnalysisCacheQuery = `
SELECT cached_analysis FROM quote_requests WHERE id = $1
`

func (r *AnalysisRepository) GetAnalysisCache(ctx context.Context, quoteID uuid.UUID) (json.RawMessage, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, getAnalysisCacheQuery, quoteID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("quote request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read analysis cache", err)
	}
	return json.RawMessage(raw), nil
}

const saveAnalysisCacheQuery = `
UPDATE quote_requests SET cached_analysis = $2 WHERE id = $1
`

func (r *AnalysisRepository) SaveAnalysisCache(ctx context.Context, quoteID uuid.UUID, report json.RawMessage) error {
	tag, err := r.db.Exec(ctx, saveAnalysisCacheQuery, quoteID, []byte(report))
	if err != nil {
		return infra.WrapRepoErr("failed to save analysis cache", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("quote request not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const updateResponseExtractionQuery = `
UPDATE quote_responses
SET extracted_data = $2,
    total_price = coalesce($3, total_price),
    currency = coalesce($4, currency),
    certifications_count = coalesce($5, certifications_count)
WHERE id = $1
`

func (r *AnalysisRepository) UpdateResponseExtraction(ctx context.Context, responseID uuid.UUID, data *quote.ExtractedData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return infra.WrapRepoErr("failed to encode extracted data", err)
	}

	var (
		price    *float64
		currency *string
		certs    *int32
	)
	if data != nil {
		price = data.PrecioTotal
		currency = data.Moneda
		certs = data.Certificaciones
	}

	tag, err := r.db.Exec(ctx, updateResponseExtractionQuery, responseID, raw, price, currency, certs)
	if err != nil {
		return infra.WrapRepoErr("failed to update response extraction", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("quote response not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}
