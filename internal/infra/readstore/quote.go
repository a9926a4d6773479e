package readstore

import (
	"context"
	"errors"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type QuoteReadStore struct {
	db db.DBTX
}

func NewQuoteReadStore(db db.DBTX) *QuoteReadStore {
	return &QuoteReadStore{db: db}
}

const findRequestByIDQuery = `
SELECT id, client_user_id, client_branch_id, provider_id, item_id, item_type,
       item_name_snapshot, quantity, message, status, created_at, responded_at
FROM quote_requests
WHERE id = $1
`

func (r *QuoteReadStore) FindRequestByID(ctx context.Context, id uuid.UUID) (*queries.RequestSnapshot, error) {
	var s queries.RequestSnapshot
	err := r.db.QueryRow(ctx, findRequestByIDQuery, id).Scan(
		&s.ID, &s.ClientUserID, &s.ClientBranchID, &s.ProviderID, &s.ItemID,
		&s.ItemType, &s.ItemNameSnapshot, &s.Quantity, &s.Message, &s.Status,
		&s.CreatedAt, &s.RespondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("quote request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find quote request by ID", err)
	}
	return &s, nil
}

const findDetailsByIDQuery = `
SELECT qr.id,
       u.full_name, u.email, cc.company_name, cb.branch_name,
       pp.id, pp.company_name,
       qr.item_id, qr.item_type, qr.item_name_snapshot,
       qr.quantity, qr.message, qr.status, qr.created_at, qr.responded_at
FROM quote_requests qr
JOIN users u ON u.id = qr.client_user_id
LEFT JOIN client_companies cc ON cc.id = u.company_id
LEFT JOIN client_branches cb ON cb.id = qr.client_branch_id
JOIN providers_profile pp ON pp.id = qr.provider_id
WHERE qr.id = $1
`

func (r *QuoteReadStore) FindDetailsByID(ctx context.Context, id uuid.UUID) (*queries.RequestDetails, error) {
	var d queries.RequestDetails
	err := r.db.QueryRow(ctx, findDetailsByIDQuery, id).Scan(
		&d.ID,
		&d.Client.Name, &d.Client.Email, &d.Client.Company, &d.Client.Branch,
		&d.Provider.ID, &d.Provider.Name,
		&d.Item.ID, &d.Item.Type, &d.Item.Name,
		&d.Quantity, &d.Message, &d.Status, &d.CreatedAt, &d.RespondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("quote request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find quote request details", err)
	}

	attachments, err := r.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Attachments = attachments
	return &d, nil
}

const listByClientQuery = `
SELECT qr.id, qr.provider_id, pp.company_name,
       qr.item_name_snapshot, qr.item_type, qr.quantity, qr.message,
       qr.status, qr.created_at,
       (SELECT count(*) FROM quote_attachments qa WHERE qa.quote_request_id = qr.id)
FROM quote_requests qr
JOIN providers_profile pp ON pp.id = qr.provider_id
WHERE qr.client_user_id = $1
ORDER BY qr.created_at DESC
`

func (r *QuoteReadStore) ListByClient(ctx context.Context, clientUserID uuid.UUID) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, listByClientQuery, clientUserID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quote requests for client", err)
	}
	defer rows.Close()

	var items []*queries.RequestListItem
	for rows.Next() {
		var item queries.RequestListItem
		if err := rows.Scan(
			&item.ID, &item.ProviderID, &item.ProviderName,
			&item.ItemName, &item.ItemType, &item.Quantity, &item.Message,
			&item.Status, &item.CreatedAt, &item.AttachmentsCount,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote request row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read quote request rows", err)
	}
	return items, nil
}

const listByProviderQuery = `
SELECT qr.id,
       u.full_name, cc.company_name, cb.branch_name,
       qr.item_name_snapshot, qr.item_type, qr.quantity, qr.message,
       qr.status, qr.created_at,
       (SELECT count(*) FROM quote_attachments qa WHERE qa.quote_request_id = qr.id)
FROM quote_requests qr
JOIN users u ON u.id = qr.client_user_id
LEFT JOIN client_companies cc ON cc.id = u.company_id
LEFT JOIN client_branches cb ON cb.id = qr.client_branch_id
WHERE qr.provider_id = $1
ORDER BY qr.created_at DESC
`

func (r *QuoteReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*queries.ReceivedRequestItem, error) {
	rows, err := r.db.Query(ctx, listByProviderQuery, providerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quote requests for provider", err)
	}
	defer rows.Close()

	var items []*queries.ReceivedRequestItem
	for rows.Next() {
		var item queries.ReceivedRequestItem
		if err := rows.Scan(
			&item.ID,
			&item.ClientName, &item.ClientCompany, &item.ClientBranch,
			&item.ItemName, &item.ItemType, &item.Quantity, &item.Message,
			&item.Status, &item.CreatedAt, &item.AttachmentsCount,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan received request row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read received request rows", err)
	}
	return items, nil
}

const listAttachmentsQuery = `
SELECT id, original_filename, file_url
FROM quote_attachments
WHERE quote_request_id = $1
ORDER BY uploaded_at
`

func (r *QuoteReadStore) ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]queries.AttachmentView, error) {
	rows, err := r.db.Query(ctx, listAttachmentsQuery, quoteID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list attachments", err)
	}
	defer rows.Close()

	attachments := []queries.AttachmentView{}
	for rows.Next() {
		var a queries.AttachmentView
		if err := rows.Scan(&a.ID, &a.OriginalFilename, &a.FileURL); err != nil {
			return nil, infra.WrapRepoErr("failed to scan attachment row", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read attachment rows", err)
	}
	return attachments, nil
}

const listResponsesQuery = `
SELECT qres.id, qres.provider_id, pp.company_name,
       qres.response_document_url, qres.total_price, qres.currency,
       qres.certifications_count, qres.extracted_data, qres.created_at
FROM quote_responses qres
JOIN providers_profile pp ON pp.id = qres.provider_id
WHERE qres.quote_request_id = $1
ORDER BY qres.created_at
`

func (r *QuoteReadStore) ListResponses(ctx context.Context, quoteID uuid.UUID) ([]*queries.ResponseView, error) {
	rows, err := r.db.Query(ctx, listResponsesQuery, quoteID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quote responses", err)
	}
	defer rows.Close()

	var responses []*queries.ResponseView
	for rows.Next() {
		var (
			v   queries.ResponseView
			raw []byte
		)
		if err := rows.Scan(
			&v.ID, &v.ProviderID, &v.ProviderName,
			&v.DocumentURL, &v.TotalPrice, &v.Currency,
			&v.CertificationsCount, &raw, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote response row", err)
		}
		data, err := quote.DecodeExtractedData(raw)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode extracted data", err)
		}
		v.ExtractedData = data
		responses = append(responses, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read quote response rows", err)
	}
	return responses, nil
}
