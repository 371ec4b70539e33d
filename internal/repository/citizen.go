package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nira-system/backend/internal/db"
	"github.com/nira-system/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type citizenRepository struct {
	db *sqlx.DB
}

func newCitizenRepository(db *sqlx.DB) *citizenRepository {
	return &citizenRepository{
		db: db,
	}
}

const citizenColumns = `id, nin, full_name, gender, dob, region, district, address,
	phone, email, photo, birth_certificate, passport, residency_proof, status, created_at, updated_at`

func (r *citizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	const op = "repository.citizen.Create"

	const query = `
	INSERT INTO citizens
	(nin, full_name, gender, dob, region, district, address, phone, email,
	 photo, birth_certificate, passport, residency_proof, status)
	VALUES (:nin, :full_name, :gender, :dob, :region, :district, :address, :phone, :email,
	 :photo, :birth_certificate, :passport, :residency_proof, :status)
	`

	res, err := r.db.NamedExecContext(ctx, query, citizen)
	if err != nil {
		// unique index on nin: a generator collision that slipped past the
		// pre-check lands here instead of inserting a duplicate
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert citizen failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *citizenRepository) ExistsByNIN(ctx context.Context, nin string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM citizens WHERE nin = ?)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, nin); err != nil {
		return false, fmt.Errorf("select citizen existence failed: %w", err)
	}

	return exists, nil
}

func (r *citizenRepository) GetApprovedByNIN(ctx context.Context, nin string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE nin = ? AND status = ?`

	var citizen domain.Citizen
	if err := r.db.GetContext(ctx, &citizen, query, nin, domain.StatusApproved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select approved citizen by nin failed: %w", err)
	}

	return &citizen, nil
}

func (r *citizenRepository) GetByNIN(ctx context.Context, nin string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE nin = ?`

	var citizen domain.Citizen
	if err := r.db.GetContext(ctx, &citizen, query, nin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select citizen by nin failed: %w", err)
	}

	return &citizen, nil
}

func (r *citizenRepository) UpdateStatus(ctx context.Context, nin string, status domain.Status) (int64, error) {
	const query = `UPDATE citizens SET status = ? WHERE nin = ?`

	res, err := r.db.ExecContext(ctx, query, status, nin)
	if err != nil {
		return 0, fmt.Errorf("update citizen status failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected failed: %w", err)
	}

	return rows, nil
}

func (r *citizenRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM citizens`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count citizens failed: %w", err)
	}

	return count, nil
}

func (r *citizenRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	const query = `SELECT COUNT(*) FROM citizens WHERE status = ?`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count citizens by status failed: %w", err)
	}

	return count, nil
}

func (r *citizenRepository) CountDistinctApprovedRegions(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(DISTINCT region) FROM citizens WHERE status = ?`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, domain.StatusApproved); err != nil {
		return 0, fmt.Errorf("count distinct approved regions failed: %w", err)
	}

	return count, nil
}

func (r *citizenRepository) RegionDistribution(ctx context.Context) ([]RegionCount, error) {
	const query = `
	SELECT region, COUNT(*) as count
	FROM citizens
	WHERE status = ?
	GROUP BY region
	ORDER BY count DESC
	`

	var rows []RegionCount
	if err := r.db.SelectContext(ctx, &rows, query, domain.StatusApproved); err != nil {
		return nil, fmt.Errorf("select region distribution failed: %w", err)
	}

	return rows, nil
}

func (r *citizenRepository) MonthlyRegistrations(ctx context.Context, months int) ([]MonthCount, error) {
	const query = `
	SELECT DATE_FORMAT(created_at, '%Y-%m') as month, COUNT(*) as count
	FROM citizens
	WHERE created_at >= DATE_SUB(NOW(), INTERVAL ? MONTH)
	GROUP BY DATE_FORMAT(created_at, '%Y-%m')
	ORDER BY month ASC
	`

	var rows []MonthCount
	if err := r.db.SelectContext(ctx, &rows, query, months); err != nil {
		return nil, fmt.Errorf("select monthly registrations failed: %w", err)
	}

	return rows, nil
}

func (r *citizenRepository) GenderDistribution(ctx context.Context) ([]GenderCount, error) {
	const query = `
	SELECT gender, COUNT(*) as count
	FROM citizens
	WHERE status = ?
	GROUP BY gender
	`

	var rows []GenderCount
	if err := r.db.SelectContext(ctx, &rows, query, domain.StatusApproved); err != nil {
		return nil, fmt.Errorf("select gender distribution failed: %w", err)
	}

	return rows, nil
}
