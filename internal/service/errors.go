package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrAccountLocked      = errors.New("account is locked due to too many failed login attempts")

	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrTicketNotFound  = errors.New("ticket not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrSearchDisabled = errors.New("ticket search is not enabled")
)

// ValidationError carries a message that is safe to return to the caller.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
