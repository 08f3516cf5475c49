package reservation

import (
	"errors"
	"fmt"
)

// ErrNoNights is returned when a stay spans zero or negative nights. Pricing
// and submission must short-circuit on it.
var ErrNoNights = errors.New("stay must cover at least one night")

// ValidationError indicates invalid guest input caught before any network
// call is made.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStateError indicates a disallowed state machine transition.
type InvalidStateError struct {
	From string
	To   string
}

// NewInvalidStateError creates an InvalidStateError for the given transition.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// IsValidation reports whether err is a guest-input validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
