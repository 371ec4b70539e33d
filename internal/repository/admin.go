package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nira-system/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type adminRepository struct {
	db *sqlx.DB
}

func newAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `
	SELECT id, username, password_hash, full_name, role, created_at, updated_at, deleted_at
	FROM admins
	WHERE username = ? AND deleted_at IS NULL
	`

	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select admin by username failed: %w", err)
	}

	return &admin, nil
}
