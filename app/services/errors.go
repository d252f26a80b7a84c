package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a missing or empty required form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError converts validator errors into a ValidationError carrying message.
func newValidationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: strings.ToLower(verrs[0].Field()), Message: message}
	}
	return err
}
