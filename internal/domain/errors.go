package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrValidation      = errors.New("product validation failed")
	ErrNilProductDto   = errors.New("product dto is nil")
	ErrNilProduct      = errors.New("product is nil")
)

// ValidationError carries every violation found for a single product
type ValidationError struct {
	Violations []string
}

func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when no product exists for ID
type NotFoundError struct {
	ID uuid.UUID
}

func NewNotFoundError(id uuid.UUID) *NotFoundError {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
