package domain

import (
	"errors"
	"fmt"
)

// Business-rule violations. These are user-facing rejections, not faults:
// callers turn them into structured results at the operation boundary.
var (
	// ErrNotCancellable means the cancellation window has closed.
	ErrNotCancellable = errors.New("booking can no longer be cancelled or modified")
	// ErrAlreadyCancelled means the booking is not in the confirmed state.
	ErrAlreadyCancelled = errors.New("booking is not confirmed")
	// ErrNotAuthenticated means the operation needs an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrModificationUnavailable marks the not-yet-implemented modify flow.
	// It is informational, never an error notification.
	ErrModificationUnavailable = errors.New("booking modification is not available yet")
	// ErrSessionExpired means the server rejected the held token.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a failure reported by the upstream platform itself, carrying
// the server's own message. Transport failures are plain wrapped errors;
// only a decoded {success:false, message} envelope becomes an APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error (status %d)", e.StatusCode)
}

// IsAuthError reports whether the failure means the token is invalid or
// expired.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
