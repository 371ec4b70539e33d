package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNINFormat       = errors.New("invalid nin format")
	ErrNINGenerationExhausted = errors.New("nin generation attempts exhausted")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidParameters      = errors.New("invalid parameters")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCitizenNotApproved     = errors.New("citizen not found or not approved")
)

// ValidationError reports a missing or malformed registration field with an
// actionable message for the applicant.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}
