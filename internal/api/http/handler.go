package apiHttp

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nira-system/backend/docs"
	"github.com/nira-system/backend/pkg/auth"
	"github.com/nira-system/backend/pkg/limiter"
	"github.com/nira-system/backend/pkg/logger"
	"github.com/nira-system/backend/pkg/validator"

	internalV1 "github.com/nira-system/backend/internal/api/http/internal/v1"
	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	files        storage.FileStore
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
	files storage.FileStore,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
		files:        files,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	// The public verification endpoint rejects anything but POST with an
	// explicit 405 instead of gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"message": "Method not allowed. Only POST requests are accepted.",
		})
	})

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config, h.files)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
