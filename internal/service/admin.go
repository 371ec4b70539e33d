package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/pkg/auth"
	"github.com/nira-system/backend/pkg/hash"
)

type adminService struct {
	adminRepository repository.Admins
	hasher          hash.PasswordHasher
	tokenManager    auth.TokenManager
}

func newAdminService(
	adminRepository repository.Admins,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *adminService {
	return &adminService{
		adminRepository: adminRepository,
		hasher:          hasher,
		tokenManager:    tokenManager,
	}
}

type AdminSession struct {
	AccessToken string
	TTL         time.Duration
	Role        domain.Role
	FullName    string
}

// Login checks credentials and returns a token carrying the admin role.
// Both unknown username and wrong password produce the same error.
func (s *adminService) Login(ctx context.Context, username string, password string) (*AdminSession, error) {
	admin, err := s.adminRepository.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get admin by username failed: %w", err)
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.tokenManager.NewJWT(admin.ID, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &AdminSession{
		AccessToken: token,
		TTL:         ttl,
		Role:        admin.Role,
		FullName:    admin.FullName,
	}, nil
}
