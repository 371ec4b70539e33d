package repository

import (
	"context"
	"fmt"

	"github.com/nira-system/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type verificationLogRepository struct {
	db *sqlx.DB
}

func newVerificationLogRepository(db *sqlx.DB) *verificationLogRepository {
	return &verificationLogRepository{
		db: db,
	}
}

func (r *verificationLogRepository) Create(ctx context.Context, entry *domain.VerificationLog) error {
	const op = "repository.verificationLog.Create"

	const query = `
	INSERT INTO verification_logs (nin, verifier_id, verification_type, ip_address, user_agent, result)
	VALUES (:nin, :verifier_id, :verification_type, :ip_address, :user_agent, :result)
	`

	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("%s: insert verification log failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *verificationLogRepository) CountToday(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM verification_logs WHERE DATE(created_at) = CURDATE()`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count today's verifications failed: %w", err)
	}

	return count, nil
}

func (r *verificationLogRepository) Recent(ctx context.Context, limit int) ([]domain.VerificationLog, error) {
	const query = `
	SELECT id, nin, verifier_id, verification_type, ip_address, user_agent, result, created_at
	FROM verification_logs
	ORDER BY created_at DESC
	LIMIT ?
	`

	var entries []domain.VerificationLog
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("select recent verifications failed: %w", err)
	}

	return entries, nil
}
