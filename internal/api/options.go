// Package api exposes the two request controllers every screen-level
// caller goes through: Query for reads and Mutation for writes. Both
// share one dispatch path over the authenticated transport and differ
// only in trigger semantics, retry policy and side effects.
package api

import (
	"context"
	"time"

	"movo/internal/feedback"
	"movo/internal/transport"

	"github.com/google/uuid"
)

const (
	// defaultStaleTime is how long fetched read data stays fresh.
	defaultStaleTime = 2 * time.Minute
	// defaultQueryRetries is the number of transparent retries for a
	// failed read. Writes are never retried.
	defaultQueryRetries = 2
)

// Doer executes one transport request. Satisfied by
// *transport.Transport; tests substitute a fake.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// Navigator performs a redirect after a successful mutation. The UI
// layer supplies the implementation.
type Navigator interface {
	Navigate(to string)
}

// Options configures a controller. Everything is optional.
type Options[T any] struct {
	// Schema is a struct prototype whose validate tags are checked
	// against the payload before a mutation dispatches.
	Schema any

	// Disabled suppresses automatic fetching on a query.
	Disabled bool

	OnSuccess      func(T)
	OnError        func(error)
	SuccessMessage string
	RedirectTo     string

	// IdempotencyKey is sent as the Idempotency-Key header when set.
	// Idempotency itself is the backend's contract, not this layer's.
	IdempotencyKey string

	Notifier  feedback.Notifier
	Navigator Navigator

	// StaleTime overrides the staleness window for queries. Zero means
	// the default.
	StaleTime time.Duration

	// Retries overrides the query retry count. Zero means the default;
	// use a negative value to disable retries.
	Retries int
}

func (o *Options[T]) notifier() feedback.Notifier {
	if o.Notifier != nil {
		return o.Notifier
	}
	return feedback.LogNotifier{}
}

func (o *Options[T]) staleTime() time.Duration {
	if o.StaleTime > 0 {
		return o.StaleTime
	}
	return defaultStaleTime
}

func (o *Options[T]) retries() int {
	if o.Retries == 0 {
		return defaultQueryRetries
	}
	if o.Retries < 0 {
		return 0
	}
	return o.Retries
}

// NewIdempotencyKey returns a fresh key for the Idempotency-Key header.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
