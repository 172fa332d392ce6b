package authflow

import "errors"

// Common errors that may occur during the onboarding flow
var (
	// ErrConfigNotFound indicates the referenced device configuration does
	// not exist.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrInvalidAuthorization is the uniform error for every authorization
	// mismatch: missing record, wrong code, wrong state, or expiry. The
	// checks share one error so a caller cannot tell which one failed.
	ErrInvalidAuthorization = errors.New("authorization code is invalid or expired")
)

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
