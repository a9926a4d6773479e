package readstore

import (
	"context"
	"errors"

	"vantage-backend/internal/infra"
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

const findProductByIDQuery = `
SELECT id, name FROM products WHERE id = $1
`

func (r *CatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error) {
	var s queries.CatalogItemSnapshot
	err := r.db.QueryRow(ctx, findProductByIDQuery, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return &s, nil
}

const findServiceByIDQuery = `
SELECT id, name FROM services WHERE id = $1
`

func (r *CatalogReadStore) FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.CatalogItemSnapshot, error) {
	var s queries.CatalogItemSnapshot
	err := r.db.QueryRow(ctx, findServiceByIDQuery, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return &s, nil
}

// listActiveItemsQuery merges products and services into one search surface;
// featured rows float to the top for the similarity search's tie-breaking.
const listActiveItemsQuery = `
SELECT p.id, 'product', p.name, coalesce(p.description, ''), p.technical_details,
       p.sku, NULL, coalesce(c.name, ''), pp.company_name, p.is_featured
FROM products p
JOIN providers_profile pp ON pp.id = p.provider_id
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.status = 'active'
UNION ALL
SELECT s.id, 'service', s.name, coalesce(s.description, ''), NULL,
       NULL, s.modality, coalesce(c.name, ''), pp.company_name, s.is_featured
FROM services s
JOIN providers_profile pp ON pp.id = s.provider_id
LEFT JOIN categories c ON c.id = s.category_id
WHERE s.status = 'active'
ORDER BY 10 DESC, 3
`

func (r *CatalogReadStore) ListActiveItems(ctx context.Context) ([]*queries.CatalogItemView, error) {
	rows, err := r.db.Query(ctx, listActiveItemsQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list catalog items", err)
	}
	defer rows.Close()

	var items []*queries.CatalogItemView
	for rows.Next() {
		var v queries.CatalogItemView
		if err := rows.Scan(
			&v.ID, &v.Type, &v.Name, &v.Description, &v.TechnicalDetails,
			&v.SKU, &v.Modality, &v.Category, &v.ProviderName, &v.IsFeatured,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan catalog item row", err)
		}
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read catalog item rows", err)
	}
	return items, nil
}

type BranchReadStore struct {
	db db.DBTX
}

func NewBranchReadStore(db db.DBTX) *BranchReadStore {
	return &BranchReadStore{db: db}
}

const findBranchByIDQuery = `
SELECT id, company_id, branch_name FROM client_branches WHERE id = $1
`

func (r *BranchReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BranchSnapshot, error) {
	var b queries.BranchSnapshot
	err := r.db.QueryRow(ctx, findBranchByIDQuery, id).Scan(&b.ID, &b.CompanyID, &b.BranchName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("branch not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find branch by ID", err)
	}
	return &b, nil
}
