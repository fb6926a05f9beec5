// Package common defines shared sentinel errors used across the server
// layers of GophBudget. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorNoUserID is returned when a protected handler runs without an
	// identity attached to the request.
	ErrorNoUserID = errors.New("no user id")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError carries a client-safe message describing why input was
// rejected. It matches ErrorValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// Validation failures reported by the services.
var (
	ErrMissingFields      = NewValidationError("All fields are required.")
	ErrInvalidEmail       = NewValidationError("Email address is invalid.")
	ErrInvalidAmount      = NewValidationError("Amount must be a positive number.")
	ErrInvalidBudget      = NewValidationError("Budget amount must be a non-negative number.")
	ErrInvalidType        = NewValidationError(`Type must be "Expense" or "Income".`)
	ErrInvalidCategory    = NewValidationError("Category not found or invalid.")
	ErrInvalidMonthFormat = NewValidationError("Invalid month format. Must be YYYY-MM.")
	ErrInvalidDate        = NewValidationError("Invalid date format. Must be YYYY-MM-DD.")
	ErrInvalidDays        = NewValidationError("Days must be a whole number between 1 and 366.")
	ErrInvalidName        = NewValidationError("Name is required.")
)
