package repository

import (
	"context"

	"github.com/nira-system/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Citizens         Citizens
	VerificationLogs VerificationLogs
	Admins           Admins
	IDCardLogs       IDCardLogs
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Citizens:         newCitizenRepository(db),
		VerificationLogs: newVerificationLogRepository(db),
		Admins:           newAdminRepository(db),
		IDCardLogs:       newIDCardLogRepository(db),
	}
}

type Citizens interface {
	Create(ctx context.Context, citizen *domain.Citizen) error
	ExistsByNIN(ctx context.Context, nin string) (bool, error)
	// GetApprovedByNIN returns domain.ErrNotFound for pending and rejected
	// citizens as well as for unknown NINs. Confidentiality rule: a lookup
	// must not reveal that a non-approved application exists.
	GetApprovedByNIN(ctx context.Context, nin string) (*domain.Citizen, error)
	GetByNIN(ctx context.Context, nin string) (*domain.Citizen, error)
	UpdateStatus(ctx context.Context, nin string, status domain.Status) (int64, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
	CountDistinctApprovedRegions(ctx context.Context) (int64, error)
	RegionDistribution(ctx context.Context) ([]RegionCount, error)
	MonthlyRegistrations(ctx context.Context, months int) ([]MonthCount, error)
	GenderDistribution(ctx context.Context) ([]GenderCount, error)
}

type VerificationLogs interface {
	Create(ctx context.Context, entry *domain.VerificationLog) error
	CountToday(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.VerificationLog, error)
}

type Admins interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type IDCardLogs interface {
	Create(ctx context.Context, entry *domain.IDCardLog) error
	Count(ctx context.Context) (int64, error)
}

type RegionCount struct {
	Region string `db:"region" json:"region"`
	Count  int64  `db:"count" json:"count"`
}

type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int64  `db:"count" json:"count"`
}

type GenderCount struct {
	Gender string `db:"gender" json:"gender"`
	Count  int64  `db:"count" json:"count"`
}
