package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initVerificationRoutes(api *gin.RouterGroup) {
	api.POST("/verify", h.verify)
}

type verifyRequest struct {
	NIN    string `json:"nin" binding:"required"`
	APIKey string `json:"api_key"`
}

type verifiedCitizen struct {
	NIN       string `json:"nin"`
	FullName  string `json:"full_name"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`
	Region    string `json:"region"`
	District  string `json:"district"`
	Photo     string `json:"photo"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
} // @name VerifiedCitizen

type verifyResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Data           verifiedCitizen `json:"data"`
	Timestamp      string          `json:"timestamp"`
	VerificationID string          `json:"verification_id"`
} // @name VerifyResponse

// @Summary Verify a citizen by NIN
// @Tags Verification
// @Description Looks up an approved citizen by NIN. Every attempt is audit-logged.
// @Accept json
// @Produce json
// @Param input body verifyRequest true "NIN to verify"
// @Success 200 {object} verifyResponse
// @Failure 400 {object} response
// @Failure 404 {object} response
// @Failure 500 {object} response
// @Router /verify [post]
func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failResponse(c, http.StatusBadRequest, "Invalid request. NIN is required.")
		return
	}

	outcome, err := h.services.Verifications.Verify(c.Request.Context(), req.NIN, service.VerifyContext{
		Type:       domain.VerificationAPI,
		VerifierID: req.APIKey,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if errors.Is(err, service.ErrInvalidNINFormat) {
		failResponse(c, http.StatusBadRequest, msgInvalidNINFormat)
		return
	}
	if err != nil {
		logger.Error("verification failed", zap.Error(err))
		serverErrorResponse(c)
		return
	}

	// Uniform outcome: never registered and registered-but-not-approved
	// look identical to the caller.
	if !outcome.Found {
		failResponse(c, http.StatusNotFound, msgCitizenNotFound)
		return
	}

	citizen := outcome.Citizen
	c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		Message: "Citizen verified successfully.",
		Data: verifiedCitizen{
			NIN:       citizen.NIN,
			FullName:  citizen.FullName,
			Gender:    citizen.Gender,
			DOB:       citizen.DOB,
			Region:    citizen.Region,
			District:  citizen.District,
			Photo:     citizen.Photo.String,
			Status:    string(citizen.Status),
			CreatedAt: citizen.CreatedAt.Format("2006-01-02 15:04:05"),
		},
		Timestamp:      time.Now().Format("2006-01-02 15:04:05"),
		VerificationID: outcome.VerificationID,
	})
}
