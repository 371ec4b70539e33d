package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/nira-system/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager provides logic for JWT generation and parsing. The token
// carries the admin identity and role so that services never read role
// from ambient state.
type TokenManager interface {
	NewJWT(adminID uuid.UUID, role string) (string, time.Duration, error)
	Parse(accessToken string) (*TokenClaims, error)
}

type TokenClaims struct {
	AdminID uuid.UUID
	Role    string
}

type Manager struct {
	signingKey     string
	accessTokenTTL time.Duration
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	return &Manager{
		signingKey:     cfg.SigningKey,
		accessTokenTTL: cfg.AccessTokenTTL,
	}, nil
}

type roleClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func (m *Manager) NewJWT(adminID uuid.UUID, role string) (string, time.Duration, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, roleClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessTokenTTL)),
			Subject:   adminID.String(),
		},
		Role: role,
	})

	accessToken, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, errors.New("sign jwt failed")
	}

	return accessToken, m.accessTokenTTL, nil
}

func (m *Manager) Parse(accessToken string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &roleClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*roleClaims)
	if !ok {
		return nil, errors.New("error get admin claims from token")
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject uuid parse: %w", err)
	}

	return &TokenClaims{AdminID: adminID, Role: claims.Role}, nil
}
