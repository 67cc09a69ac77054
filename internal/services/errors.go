package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/driver-quiz-service/internal/errors"
)

// ===== ANALYTICS SERVICE ERRORS =====

var (
	ErrDriverNotFound   = errors.New("driver not found")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrExportFailed     = errors.New("failed to build analytics export")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDriverNotFound)
}

// IsValidation checks if error represents a rejected filter
func IsValidation(err error) bool {
	if errors.Is(err, ErrInvalidDateRange) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
