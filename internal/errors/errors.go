// Package errors defines the error taxonomy shared by the transport and
// request-controller layers. Validators never use these: local validation
// failures are encoded in result values, never raised as errors.
package errors

import "fmt"

// DomainError is a stable code plus a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

var (
	// ErrSessionExpired is terminal: the refresh flow failed (or was
	// impossible) and the session has been cleared.
	ErrSessionExpired = &DomainError{
		Code:    "SESSION_EXPIRED",
		Message: "session expired, please log in again",
	}
	ErrNoRefreshToken = &DomainError{
		Code:    "NO_REFRESH_TOKEN",
		Message: "no refresh token available",
	}
	ErrRefreshFailed = &DomainError{
		Code:    "REFRESH_FAILED",
		Message: "token refresh failed",
	}
	ErrQueryDisabled = &DomainError{
		Code:    "QUERY_DISABLED",
		Message: "query is disabled",
	}
)

// TransportError wraps a network-level failure: unreachable host,
// timeout, or a malformed response body.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
