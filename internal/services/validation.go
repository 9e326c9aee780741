package services

import (
	"errors"
	"fmt"

	"catalog/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns the validator shared by handlers and services.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Validate checks s against its validate tags and converts failures to an
// apperror validation error listing every offending field.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Wrap(apperror.KindValidation, err, "Invalid request")
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return apperror.Validation("Validation failed", fields)
}
