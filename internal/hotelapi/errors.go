package hotelapi

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when the collaborator rejects the caller's
// session. There is no local recovery; the portal must clear the session and
// force a logout.
var ErrUnauthenticated = errors.New("unauthenticated")

// ConflictError is an availability conflict: the collaborator rejected a
// booking because the room is no longer free for the requested range. It is
// recoverable; the guest goes back to browsing after a full refresh.
type ConflictError struct {
	Message string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "room is no longer available for the selected dates"
}

// RequestError is a collaborator 4xx rejection other than auth or conflict,
// carrying the server's message verbatim when present.
type RequestError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected with status %d", e.Status)
}

// TransportError covers network failures and 5xx responses. Recoverable at
// the component level; the existing local state must stay intact.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("hotel API unreachable: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is an availability conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsCanceled reports whether err stems from a cancelled or expired context.
// Cancellation is not failure; it is ignored rather than surfaced.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// UserMessage extracts the message to show the user: the collaborator's own
// message when present, else a generic fallback.
func UserMessage(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return fallback
}
