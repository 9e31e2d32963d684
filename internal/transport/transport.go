// Package transport is the authenticated HTTP layer under the request
// controllers. It signs outgoing requests with the current access
// token, intercepts 401 responses, refreshes the token pair at most
// once per request and serializes concurrent refresh attempts.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "movo/internal/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the injected accessor/mutator for the token pair.
// Satisfied by *auth.Session; tests substitute a fake.
type SessionStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// Request is one logical outgoing call. The transport may replay it
// once after a token refresh; retried tracks that.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Header      http.Header

	retried bool
}

// Response is the raw result of a call. Non-2xx statuses are returned
// as responses, not errors; classification happens above this layer.
// The exception is 401, which the transport consumes.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Transport wraps an http.Client with bearer signing and the
// refresh-and-retry flow.
type Transport struct {
	base    string
	client  *http.Client
	session SessionStore
	refresh singleflight.Group
}

func New(baseURL string, timeout time.Duration, session SessionStore) *Transport {
	return &Transport{
		base:    strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		session: session,
	}
}

// Do executes the request. On a 401 it refreshes the token pair and
// replays the request exactly once; a second 401, a missing refresh
// token or a failed refresh clears the session and surfaces
// ErrSessionExpired.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := t.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized {
		return resp, nil
	}

	if req.retried {
		_ = t.session.Clear(ctx)
		return nil, apierrors.ErrSessionExpired
	}
	// Mark before refreshing so a failure in the retry path can never
	// loop back into another refresh.
	req.retried = true

	if err := t.refreshTokens(ctx); err != nil {
		_ = t.session.Clear(ctx)
		log.Printf("token refresh failed: %v", err)
		return nil, apierrors.ErrSessionExpired
	}

	resp, err = t.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusUnauthorized {
		_ = t.session.Clear(ctx)
		return nil, apierrors.ErrSessionExpired
	}
	return resp, nil
}

// send performs one HTTP round trip, reading the access token at the
// moment of signing.
func (t *Transport) send(ctx context.Context, req *Request) (*Response, error) {
	target := t.base + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &apierrors.TransportError{URL: target, Err: err}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if token, err := t.session.AccessToken(ctx); err == nil && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &apierrors.TransportError{URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &apierrors.TransportError{URL: target, Err: err}
	}

	return &Response{Status: httpResp.StatusCode, Body: data, Header: httpResp.Header}, nil
}

// refreshEnvelope is the backend's success shape for the refresh call.
type refreshEnvelope struct {
	Data struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

// refreshTokens exchanges the refresh token for a new pair. Concurrent
// callers collapse into a single refresh call; every waiter observes
// the shared outcome.
func (t *Transport) refreshTokens(ctx context.Context) error {
	_, err, _ := t.refresh.Do("refresh", func() (any, error) {
		refreshToken, err := t.session.RefreshToken(ctx)
		if err != nil {
			return nil, err
		}
		if refreshToken == "" {
			return nil, apierrors.ErrNoRefreshToken
		}

		payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
		if err != nil {
			return nil, err
		}
		target := t.base + "/auth/refresh-token"
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := t.client.Do(httpReq)
		if err != nil {
			return nil, &apierrors.TransportError{URL: target, Err: err}
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			return nil, apierrors.ErrRefreshFailed
		}
		var envelope refreshEnvelope
		if err := json.NewDecoder(httpResp.Body).Decode(&envelope); err != nil {
			return nil, &apierrors.TransportError{URL: target, Err: err}
		}
		if envelope.Data.Token == "" || envelope.Data.RefreshToken == "" {
			return nil, apierrors.ErrRefreshFailed
		}

		if err := t.session.SetTokens(ctx, envelope.Data.Token, envelope.Data.RefreshToken); err != nil {
			return nil, err
		}
		log.Printf("access token refreshed")
		return nil, nil
	})
	return err
}
