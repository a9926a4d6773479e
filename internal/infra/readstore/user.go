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

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const findUserByIDQuery = `
SELECT u.id, u.email, u.full_name, u.role, u.company_id, cc.company_name, u.branch_id
FROM users u
LEFT JOIN client_companies cc ON cc.id = u.company_id
WHERE u.id = $1
`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserSnapshot, error) {
	var u queries.UserSnapshot
	err := r.db.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.CompanyID, &u.CompanyName, &u.BranchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &u, nil
}
