package service

import (
	"context"

	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/internal/storage"
	"github.com/nira-system/backend/pkg/auth"
	"github.com/nira-system/backend/pkg/hash"
	"github.com/nira-system/backend/pkg/pdf"

	"github.com/redis/go-redis/v9"
)

type Services struct {
	Citizens      Citizens
	Verifications Verifications
	Admins        Admins
	Stats         Stats
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	Repos        *repository.Repositories
	Files        storage.FileStore
	PDF          *pdf.Generator
	Notifier     StatusNotifier
	Cache        redis.UniversalClient
}

func NewServices(deps Deps) *Services {
	return &Services{
		Citizens: newCitizenService(
			deps.Repos.Citizens,
			deps.Repos.IDCardLogs,
			deps.Files,
			deps.PDF,
			deps.Notifier,
			deps.Config.NIN,
		),
		Verifications: newVerificationService(deps.Repos.Citizens, deps.Repos.VerificationLogs),
		Admins:        newAdminService(deps.Repos.Admins, deps.Hasher, deps.TokenManager),
		Stats:         newStatsService(deps.Repos, deps.Cache, deps.Config.Stats),
	}
}

type Citizens interface {
	Create(ctx context.Context, input CreateCitizenInput) (string, error)
	SetStatus(ctx context.Context, nin string, status domain.Status, role domain.Role) (*StatusUpdate, error)
	IssueIDCard(ctx context.Context, nin string, issuedBy string) (string, error)
}

type Verifications interface {
	Verify(ctx context.Context, rawInput string, caller VerifyContext) (*VerificationOutcome, error)
}

type Admins interface {
	Login(ctx context.Context, username string, password string) (*AdminSession, error)
}

type Stats interface {
	Snapshot(ctx context.Context) (*StatsSnapshot, error)
}

// StatusNotifier delivers status-change notifications to applicants.
// Delivery is best effort: the status transition never depends on it.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, input StatusNotification) error
}

type StatusNotification struct {
	NIN      string
	Email    string
	FullName string
	Status   domain.Status
}
