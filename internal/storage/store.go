// Package storage provides durable credential stores for the auth
// session. Every backend persists two opaque string entries under the
// same keys the backend contract names.
package storage

import (
	"context"
	"sync"
)

const (
	accessTokenKey  = "auth-token"
	refreshTokenKey = "refresh_token"
)

// TokenStore is an opaque key-value store for the session credentials.
// A missing entry is reported as an empty string, not an error.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, access, refresh string) error
	DeleteAccessToken(ctx context.Context) error
	Clear(ctx context.Context) error
	HasAccessToken(ctx context.Context) (bool, error)
}

// MemoryStore keeps credentials in process memory. Used in tests and as
// a fallback when no durable backend is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) AccessToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[accessTokenKey], nil
}

func (s *MemoryStore) RefreshToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[refreshTokenKey], nil
}

func (s *MemoryStore) SetTokens(_ context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[accessTokenKey] = access
	s.values[refreshTokenKey] = refresh
	return nil
}

func (s *MemoryStore) DeleteAccessToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, accessTokenKey)
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, accessTokenKey)
	delete(s.values, refreshTokenKey)
	return nil
}

func (s *MemoryStore) HasAccessToken(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	return token != "", err
}
