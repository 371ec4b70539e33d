package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/pkg/auth"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	adminCtx            = "adminClaims"
)

// adminIdentityMiddleware resolves the caller's identity and role from the
// bearer token. The role travels with the request from here on as explicit
// data, never as ambient session state.
func (h *Handler) adminIdentityMiddleware(c *gin.Context) {
	claims, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Error("parse auth header failed", zap.Error(err))
		}
		failResponse(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	c.Set(adminCtx, claims)
	c.Next()
}

func (h *Handler) parseAuthHeader(c *gin.Context) (*auth.TokenClaims, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return nil, errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return nil, errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return nil, errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

func (h *Handler) callerClaims(c *gin.Context) (*auth.TokenClaims, error) {
	value, ok := c.Get(adminCtx)
	if !ok {
		return nil, errors.New("admin claims not found")
	}

	claims, ok := value.(*auth.TokenClaims)
	if !ok {
		return nil, errors.New("admin claims have wrong type")
	}

	return claims, nil
}

func (h *Handler) callerRole(c *gin.Context) domain.Role {
	claims, err := h.callerClaims(c)
	if err != nil {
		return domain.RoleNone
	}

	return domain.Role(claims.Role)
}
