package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidNINFormat = "Invalid NIN format. Expected format: SO-YYYY-NNNNNN"
	msgCitizenNotFound  = "Citizen not found or not approved."
	msgServerError      = "Internal server error. Please try again later."
	msgUnauthorized     = "Unauthorized"
	msgInvalidParams    = "Invalid parameters"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
} // @name Response

func failResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, response{Success: false, Message: message})
}

// serverErrorResponse hides fault detail from the caller; the wrapped error
// has already been logged by the handler.
func serverErrorResponse(c *gin.Context) {
	failResponse(c, http.StatusInternalServerError, msgServerError)
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		resp := ValidationErrorStruct{
			Success: false,
			Message: "Validation error",
			Errors:  out,
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
		return
	}

	failResponse(c, http.StatusBadRequest, "Invalid request body.")
}

type ValidationErrorStruct struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "nin":
		return "NIN must match SO-YYYY-NNNNNN"
	case "oneof":
		return fmt.Sprintf("Value must be one of: %v", value)
	case "min":
		return fmt.Sprintf("Minimum length is %v", value)
	case "max":
		return fmt.Sprintf("Maximum length is %v", value)
	}
	return tag
}
