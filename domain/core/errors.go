package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAuditNotFound = fmt.Errorf("%w: audit", ErrNotFound)

	// Sample errors
	ErrSourceMissing    = errors.New("sample source does not exist")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Validation errors
	ErrInvalidAlpha = errors.New("significance level must be in (0, 1)")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsSourceMissing(err error) bool {
	return errors.Is(err, ErrSourceMissing)
}
