// Package auth owns the client-side session: the access/refresh token
// pair behind an explicit accessor/mutator. The transport receives a
// Session by injection, never through a package-level global, so the
// refresh flow stays testable with a fake store.
package auth

import (
	"context"
	"time"

	"movo/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the single piece of shared mutable state in the client.
// All reads happen at the moment a request is signed; writes on refresh
// or logout are visible to the next signed request immediately because
// nothing is cached here.
type Session struct {
	store storage.TokenStore
}

func NewSession(store storage.TokenStore) *Session {
	return &Session{store: store}
}

func (s *Session) AccessToken(ctx context.Context) (string, error) {
	return s.store.AccessToken(ctx)
}

func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	return s.store.RefreshToken(ctx)
}

// SetTokens replaces the pair, e.g. after login or a successful refresh.
func (s *Session) SetTokens(ctx context.Context, access, refresh string) error {
	return s.store.SetTokens(ctx, access, refresh)
}

// Clear logs the session out.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	return s.store.HasAccessToken(ctx)
}

// Expired reports whether the stored access token carries an exp claim
// in the past. The claim is read without signature verification: the
// server remains the authority, this is only a hint to refresh early.
// Returns false when no token is stored or the token is unparseable.
func (s *Session) Expired(ctx context.Context) bool {
	token, err := s.store.AccessToken(ctx)
	if err != nil || token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
