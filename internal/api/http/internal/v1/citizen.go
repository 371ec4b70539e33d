package v1

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initCitizenRoutes(api *gin.RouterGroup) {
	citizens := api.Group("/citizens")

	citizens.POST("", h.registerCitizen)
}

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	NIN     string `json:"nin,omitempty"`
} // @name RegisterResponse

// @Summary Register a citizen application
// @Tags Citizens
// @Description Submits a registration form with supporting documents. The application starts pending.
// @Accept mpfd
// @Produce json
// @Param full_name formData string true "Full name"
// @Param gender formData string true "Gender"
// @Param dob formData string true "Date of birth"
// @Param region formData string true "Region"
// @Param district formData string true "District"
// @Param address formData string true "Address"
// @Param phone formData string false "Phone"
// @Param email formData string false "Email"
// @Param photo formData file false "Passport photo"
// @Param birth_certificate formData file false "Birth certificate"
// @Param passport formData file false "Passport"
// @Param residency_proof formData file false "Residency proof"
// @Success 200 {object} registerResponse
// @Failure 400 {object} response
// @Failure 500 {object} response
// @Router /citizens [post]
func (h *Handler) registerCitizen(c *gin.Context) {
	input := service.CreateCitizenInput{
		FullName: strings.TrimSpace(c.PostForm("full_name")),
		Gender:   strings.TrimSpace(c.PostForm("gender")),
		DOB:      strings.TrimSpace(c.PostForm("dob")),
		Region:   strings.TrimSpace(c.PostForm("region")),
		District: strings.TrimSpace(c.PostForm("district")),
		Address:  strings.TrimSpace(c.PostForm("address")),
		Phone:    strings.TrimSpace(c.PostForm("phone")),
		Email:    strings.TrimSpace(c.PostForm("email")),
	}

	uploads := []struct {
		field  string
		subdir string
		dest   *string
	}{
		{"photo", "photos", &input.Photo},
		{"birth_certificate", "documents", &input.BirthCertificate},
		{"passport", "documents", &input.Passport},
		{"residency_proof", "documents", &input.ResidencyProof},
	}

	for _, upload := range uploads {
		path, err := h.saveUpload(c, upload.field, upload.subdir)
		if err != nil {
			failResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		*upload.dest = path
	}

	nin, err := h.services.Citizens.Create(c.Request.Context(), input)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		failResponse(c, http.StatusBadRequest, "Please fill in all required fields.")
		return
	}
	if err != nil {
		logger.Error("citizen registration failed", zap.Error(err))
		serverErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, registerResponse{
		Success: true,
		Message: "Registration submitted successfully! Your NIN is: " + nin,
		NIN:     nin,
	})
}

// saveUpload stores an optional document upload and returns its reference
// path, or "" when the field was not supplied.
func (h *Handler) saveUpload(c *gin.Context, field string, subdir string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", errors.New("Failed to read uploaded file for " + field + ".")
	}

	return h.storeDocument(c, fileHeader, field, subdir)
}

func (h *Handler) storeDocument(c *gin.Context, fileHeader *multipart.FileHeader, field string, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExtensions[ext] {
		return "", errors.New("Invalid file type for " + field + ". Only JPG, PNG, and PDF files are allowed.")
	}

	if fileHeader.Size > h.config.Uploads.MaxSizeMB*1024*1024 {
		return "", errors.New("File size too large for " + field + ". Maximum 5MB allowed.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("Failed to upload " + field + ".")
	}
	defer src.Close()

	path, err := h.files.Save(c.Request.Context(), subdir, ext, src)
	if err != nil {
		logger.Error("store uploaded document failed", zap.String("field", field), zap.Error(err))
		return "", errors.New("Failed to upload " + field + ".")
	}

	return path, nil
}
