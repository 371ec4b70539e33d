package v1

import (
	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/internal/storage"
	"github.com/nira-system/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title NIRA Backend API
// @version 1.0
// @description Somalia National Identification & Registration Authority backend

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	files        storage.FileStore
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
	files storage.FileStore,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
		files:        files,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initVerificationRoutes(v1)
	h.initCitizenRoutes(v1)
	h.initAdminRoutes(v1)
	h.initStatsRoutes(v1)
}
