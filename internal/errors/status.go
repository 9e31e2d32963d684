package errors

import "fmt"

// StatusError is a non-2xx HTTP response that was not intercepted by the
// auth layer. The raw body is kept so the feedback classifier can extract
// the backend's per-field messages.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.Status)
}
