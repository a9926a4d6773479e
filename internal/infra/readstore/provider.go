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

type ProviderReadStore struct {
	db db.DBTX
}

func NewProviderReadStore(db db.DBTX) *ProviderReadStore {
	return &ProviderReadStore{db: db}
}

const findProviderByIDQuery = `
SELECT id, user_id, company_name
FROM providers_profile
WHERE id = $1
`

func (r *ProviderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProviderSnapshot, error) {
	var p queries.ProviderSnapshot
	err := r.db.QueryRow(ctx, findProviderByIDQuery, id).Scan(&p.ID, &p.UserID, &p.CompanyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("provider not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find provider by ID", err)
	}
	return &p, nil
}

const findProviderByUserIDQuery = `
SELECT id, user_id, company_name
FROM providers_profile
WHERE user_id = $1
`

func (r *ProviderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.ProviderSnapshot, error) {
	var p queries.ProviderSnapshot
	err := r.db.QueryRow(ctx, findProviderByUserIDQuery, userID).Scan(&p.ID, &p.UserID, &p.CompanyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("provider profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find provider by user ID", err)
	}
	return &p, nil
}
