package v1

import (
	"net/http"
	"time"

	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initStatsRoutes(api *gin.RouterGroup) {
	api.GET("/stats", h.stats)
}

type statsResponse struct {
	Success   bool                   `json:"success"`
	Stats     *service.StatsSnapshot `json:"stats"`
	Timestamp string                 `json:"timestamp"`
} // @name StatsResponse

// @Summary Registration and verification statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 500 {object} response
// @Router /stats [get]
func (h *Handler) stats(c *gin.Context) {
	snapshot, err := h.services.Stats.Snapshot(c.Request.Context())
	if err != nil {
		logger.Error("stats snapshot failed", zap.Error(err))
		failResponse(c, http.StatusInternalServerError, "Failed to retrieve statistics.")
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		Success:   true,
		Stats:     snapshot,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})
}
