package v1

import (
	"errors"
	"net/http"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")

	admin.POST("/login", h.adminLogin)

	authed := admin.Group("/", h.adminIdentityMiddleware)
	authed.PUT("/citizens/:nin/status", h.updateCitizenStatus)
	authed.POST("/citizens/:nin/id-card", h.issueIDCard)
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminLoginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
} // @name AdminLoginResponse

// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body adminLoginRequest true "Credentials"
// @Success 200 {object} adminLoginResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} response
// @Router /admin/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	session, err := h.services.Admins.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		// generic message, no hint which part was wrong
		failResponse(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err != nil {
		logger.Error("admin login failed", zap.Error(err))
		serverErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, adminLoginResponse{
		Success:     true,
		AccessToken: session.AccessToken,
		Role:        string(session.Role),
		FullName:    session.FullName,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// @Summary Approve or reject a citizen application
// @Tags Admin
// @Accept json
// @Produce json
// @Param nin path string true "Citizen NIN"
// @Param input body updateStatusRequest true "Target status"
// @Success 200 {object} response
// @Failure 400 {object} response
// @Failure 403 {object} response
// @Failure 404 {object} response
// @Security AdminAuth
// @Router /admin/citizens/{nin}/status [put]
func (h *Handler) updateCitizenStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failResponse(c, http.StatusBadRequest, msgInvalidParams)
		return
	}

	nin := c.Param("nin")

	update, err := h.services.Citizens.SetStatus(
		c.Request.Context(),
		nin,
		domain.Status(req.Status),
		h.callerRole(c),
	)
	if errors.Is(err, service.ErrUnauthorized) {
		failResponse(c, http.StatusForbidden, msgUnauthorized)
		return
	}
	if errors.Is(err, service.ErrInvalidParameters) {
		failResponse(c, http.StatusBadRequest, msgInvalidParams)
		return
	}
	if err != nil {
		logger.Error("update citizen status failed", zap.String("nin", nin), zap.Error(err))
		serverErrorResponse(c)
		return
	}

	if !update.Found {
		failResponse(c, http.StatusNotFound, "Citizen not found")
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "Status updated"})
}

type issueIDCardResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	CardPath string `json:"card_path"`
} // @name IssueIDCardResponse

// @Summary Issue an ID card for an approved citizen
// @Tags Admin
// @Produce json
// @Param nin path string true "Citizen NIN"
// @Success 200 {object} issueIDCardResponse
// @Failure 404 {object} response
// @Security AdminAuth
// @Router /admin/citizens/{nin}/id-card [post]
func (h *Handler) issueIDCard(c *gin.Context) {
	nin := c.Param("nin")

	claims, err := h.callerClaims(c)
	if err != nil {
		failResponse(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if !domain.Role(claims.Role).CanReviewApplications() {
		failResponse(c, http.StatusForbidden, msgUnauthorized)
		return
	}

	path, err := h.services.Citizens.IssueIDCard(c.Request.Context(), nin, claims.AdminID.String())
	if errors.Is(err, service.ErrCitizenNotApproved) {
		failResponse(c, http.StatusNotFound, msgCitizenNotFound)
		return
	}
	if err != nil {
		logger.Error("issue id card failed", zap.String("nin", nin), zap.Error(err))
		serverErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, issueIDCardResponse{
		Success:  true,
		Message:  "ID card issued.",
		CardPath: path,
	})
}
