package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// SecureFileStore persists credentials in a single encrypted file:
// XChaCha20-Poly1305 over a JSON blob, random nonce per write, written
// atomically with 0600 permissions.
type SecureFileStore struct {
	mu   sync.Mutex
	path string
	aead cipher.AEAD
}

// NewSecureFileStore opens (or lazily creates) the store at path. The
// key must be exactly 32 bytes.
func NewSecureFileStore(path string, key []byte) (*SecureFileStore, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("secure store key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &SecureFileStore{path: path, aead: aead}, nil
}

func (s *SecureFileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) < s.aead.NonceSize() {
		return nil, fmt.Errorf("credential file %s is corrupt", s.path)
	}
	nonce, box := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, box, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt credential file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *SecureFileStore) save(values map[string]string) error {
	plain, err := json.Marshal(values)
	if err != nil {
		return err
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	box := s.aead.Seal(nil, nonce, plain, nil)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(nonce, box...), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *SecureFileStore) get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (s *SecureFileStore) AccessToken(context.Context) (string, error) {
	return s.get(accessTokenKey)
}

func (s *SecureFileStore) RefreshToken(context.Context) (string, error) {
	return s.get(refreshTokenKey)
}

func (s *SecureFileStore) SetTokens(_ context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[accessTokenKey] = access
	values[refreshTokenKey] = refresh
	return s.save(values)
}

func (s *SecureFileStore) DeleteAccessToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	delete(values, accessTokenKey)
	return s.save(values)
}

func (s *SecureFileStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *SecureFileStore) HasAccessToken(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}
