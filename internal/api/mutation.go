package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	apierrors "movo/internal/errors"
	"movo/internal/feedback"
	"movo/internal/models"
	"movo/internal/transport"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Mutation is the write-mode controller for one endpoint. Submit
// validates the payload against the bound schema, dispatches exactly
// once (writes are never auto-retried; idempotency is the caller's
// contract via the Idempotency-Key header) and runs the configured
// side effects.
type Mutation[T any] struct {
	d      Doer
	method string
	path   string
	opts   Options[T]

	mu      sync.Mutex
	data    T
	err     error
	loading bool
	success bool
}

func NewMutation[T any](d Doer, method, path string, opts Options[T]) *Mutation[T] {
	return &Mutation[T]{d: d, method: method, path: path, opts: opts}
}

// Validate checks the payload against the bound schema without
// dispatching. The schema is a struct prototype with validate tags;
// non-file payload fields are decoded into a fresh instance by their
// JSON names. No schema means everything passes.
func (m *Mutation[T]) Validate(payload map[string]any) models.ValidationResult {
	if m.opts.Schema == nil {
		return models.NewValidationResult(nil, nil)
	}

	schemaType := reflect.TypeOf(m.opts.Schema)
	for schemaType.Kind() == reflect.Pointer {
		schemaType = schemaType.Elem()
	}
	target := reflect.New(schemaType).Interface()

	plain := make(map[string]any, len(payload))
	for key, value := range payload {
		if isFileValue(value) {
			continue
		}
		plain[key] = value
	}
	if encoded, err := json.Marshal(plain); err == nil {
		_ = json.Unmarshal(encoded, target)
	}

	err := validate.Struct(target)
	if err == nil {
		return models.NewValidationResult(nil, nil)
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		msgs := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed the %s check", fe.Field(), fe.Tag()))
		}
		return models.NewValidationResult(msgs, nil)
	}
	return models.NewValidationResult([]string{err.Error()}, nil)
}

// Submit validates, dispatches and runs side effects. The returned
// error is always the raw error; user-facing notifications have
// already been posted by the time it returns.
func (m *Mutation[T]) Submit(ctx context.Context, payload map[string]any) (T, error) {
	var zero T

	if result := m.Validate(payload); !result.IsValid {
		err := &apierrors.DomainError{
			Code:    "VALIDATION_FAILED",
			Message: strings.Join(result.Errors, "; "),
		}
		for _, msg := range result.Errors {
			m.opts.notifier().Notify(feedback.SeverityError, msg)
		}
		m.record(zero, err)
		if m.opts.OnError != nil {
			m.opts.OnError(err)
		}
		return zero, err
	}

	req, err := m.buildRequest(payload)
	if err != nil {
		return m.fail(zero, err)
	}

	m.setLoading(true)
	resp, err := m.d.Do(ctx, req)
	m.setLoading(false)
	if err != nil {
		return m.fail(zero, err)
	}
	if !resp.OK() {
		return m.fail(zero, &apierrors.StatusError{Status: resp.Status, Body: resp.Body})
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return m.fail(zero, &apierrors.TransportError{URL: m.path, Err: err})
		}
	}
	m.record(data, nil)

	if m.opts.SuccessMessage != "" {
		m.opts.notifier().Notify(feedback.SeveritySuccess, m.opts.SuccessMessage)
	}
	if m.opts.OnSuccess != nil {
		m.opts.OnSuccess(data)
	}
	if m.opts.RedirectTo != "" && m.opts.Navigator != nil {
		m.opts.Navigator.Navigate(m.opts.RedirectTo)
	}
	return data, nil
}

func (m *Mutation[T]) buildRequest(payload map[string]any) (*transport.Request, error) {
	req := &transport.Request{Method: m.method, Path: m.path, Header: http.Header{}}
	if m.opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", m.opts.IdempotencyKey)
	}

	// GET and DELETE never carry a body.
	if m.method == http.MethodGet || m.method == http.MethodDelete {
		req.Query = queryParams(payload)
		return req, nil
	}
	if len(payload) == 0 {
		return req, nil
	}

	var err error
	if hasFiles(payload) {
		req.Body, req.ContentType, err = encodeMultipart(payload)
	} else {
		req.Body, req.ContentType, err = encodeJSON(payload)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// fail records the error, posts the classified notifications and hands
// the raw error to the OnError hook.
func (m *Mutation[T]) fail(zero T, err error) (T, error) {
	m.record(zero, err)
	feedback.Report(err, m.opts.notifier())
	if m.opts.OnError != nil {
		m.opts.OnError(err)
	}
	return zero, err
}

func (m *Mutation[T]) record(data T, err error) {
	m.mu.Lock()
	m.data = data
	m.err = err
	m.success = err == nil
	m.mu.Unlock()
}

func (m *Mutation[T]) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Mutation[T]) Data() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

func (m *Mutation[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mutation[T]) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Mutation[T]) IsSuccess() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

func (m *Mutation[T]) IsError() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err != nil
}
