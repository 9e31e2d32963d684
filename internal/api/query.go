package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	apierrors "movo/internal/errors"
	"movo/internal/transport"
)

// Query is the read-mode controller for one resource path. Fetch serves
// cached data inside the staleness window; Refetch always goes to the
// network. Failed reads are retried transparently before the error
// state surfaces. Repeated calls are not coalesced: each Fetch past the
// staleness window is an independent request.
type Query[T any] struct {
	d    Doer
	path string
	opts Options[T]

	mu        sync.Mutex
	data      T
	err       error
	loading   bool
	success   bool
	fetchedAt time.Time
}

func NewQuery[T any](d Doer, path string, opts Options[T]) *Query[T] {
	return &Query[T]{d: d, path: path, opts: opts}
}

// Fetch returns the cached result while it is fresh, otherwise fetches.
// A disabled query never fetches.
func (q *Query[T]) Fetch(ctx context.Context, params map[string]any) (T, error) {
	if q.opts.Disabled {
		var zero T
		return zero, apierrors.ErrQueryDisabled
	}

	q.mu.Lock()
	if q.success && time.Since(q.fetchedAt) < q.opts.staleTime() {
		data := q.data
		q.mu.Unlock()
		return data, nil
	}
	q.mu.Unlock()

	return q.run(ctx, params)
}

// Refetch bypasses the staleness window. Manual triggers work even on a
// disabled query.
func (q *Query[T]) Refetch(ctx context.Context, params map[string]any) (T, error) {
	return q.run(ctx, params)
}

func (q *Query[T]) run(ctx context.Context, params map[string]any) (T, error) {
	q.setLoading(true)
	defer q.setLoading(false)

	var (
		data T
		err  error
	)
	attempts := q.opts.retries() + 1
	for attempt := 0; attempt < attempts; attempt++ {
		data, err = q.fetchOnce(ctx, params)
		if err == nil {
			break
		}
		// A dead session will not come back on its own; retrying would
		// only hammer the refresh endpoint.
		if errors.Is(err, apierrors.ErrSessionExpired) {
			break
		}
	}

	q.mu.Lock()
	q.err = err
	q.success = err == nil
	if err == nil {
		q.data = data
		q.fetchedAt = time.Now()
	}
	q.mu.Unlock()

	if err != nil {
		if q.opts.OnError != nil {
			q.opts.OnError(err)
		}
		var zero T
		return zero, err
	}
	if q.opts.OnSuccess != nil {
		q.opts.OnSuccess(data)
	}
	return data, nil
}

func (q *Query[T]) fetchOnce(ctx context.Context, params map[string]any) (T, error) {
	var data T

	resp, err := q.d.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   q.path,
		Query:  queryParams(params),
	})
	if err != nil {
		return data, err
	}
	if !resp.OK() {
		return data, &apierrors.StatusError{Status: resp.Status, Body: resp.Body}
	}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return data, &apierrors.TransportError{URL: q.path, Err: err}
		}
	}
	return data, nil
}

func (q *Query[T]) setLoading(v bool) {
	q.mu.Lock()
	q.loading = v
	q.mu.Unlock()
}

// Stale reports whether the cached data is older than the staleness
// window (or was never fetched).
func (q *Query[T]) Stale() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.success || time.Since(q.fetchedAt) >= q.opts.staleTime()
}

func (q *Query[T]) Data() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data
}

func (q *Query[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *Query[T]) IsLoading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

func (q *Query[T]) IsSuccess() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.success
}

func (q *Query[T]) IsError() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err != nil
}
