package repository

import (
	"context"
	"fmt"

	"github.com/nira-system/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type idCardLogRepository struct {
	db *sqlx.DB
}

func newIDCardLogRepository(db *sqlx.DB) *idCardLogRepository {
	return &idCardLogRepository{
		db: db,
	}
}

func (r *idCardLogRepository) Create(ctx context.Context, entry *domain.IDCardLog) error {
	const query = `
	INSERT INTO id_card_logs (nin, issued_by, card_path)
	VALUES (:nin, :issued_by, :card_path)
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert id card log failed: %w", err)
	}

	return nil
}

func (r *idCardLogRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM id_card_logs`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count id card logs failed: %w", err)
	}

	return count, nil
}
