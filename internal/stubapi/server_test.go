package stubapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"movo/internal/auth"
	"movo/internal/storage"
	"movo/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// startStub serves the stub app on a random local port and returns its
// base URL.
func startStub(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := New(testSecret)
	go func() {
		_ = app.Listener(listener)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return "http://" + listener.Addr().String()
}

func TestTokenPairRoundtrip(t *testing.T) {
	access, refresh, err := TokenPair(testSecret, "user@example.com", AccessTokenTTL, RefreshTokenTTL)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	subject, err := parseToken(testSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)

	_, err = parseToken("wrong-secret", access)
	assert.Error(t, err)

	expired, _, err := TokenPair(testSecret, "user@example.com", -time.Minute, RefreshTokenTTL)
	require.NoError(t, err)
	_, err = parseToken(testSecret, expired)
	assert.Error(t, err)
}

func TestLoginAndAuthenticatedCall(t *testing.T) {
	base := startStub(t)
	ctx := context.Background()

	session := auth.NewSession(storage.NewMemoryStore())
	tr := transport.New(base, 5*time.Second, session)

	// Login is unauthenticated.
	body, err := json.Marshal(map[string]string{"email": "user@example.com", "password": "secret"})
	require.NoError(t, err)
	resp, err := tr.Do(ctx, &transport.Request{
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Body:        body,
		ContentType: "application/json",
	})
	require.NoError(t, err)
	require.True(t, resp.OK())

	var login struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &login))
	require.NoError(t, session.SetTokens(ctx, login.Token, login.RefreshToken))

	resp, err = tr.Do(ctx, &transport.Request{Method: http.MethodGet, Path: "/auth/me"})
	require.NoError(t, err)
	require.True(t, resp.OK())

	var me struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &me))
	assert.Equal(t, "user@example.com", me.Data.Email)
}

// An expired access token with a live refresh token recovers without the
// caller noticing: the transport refreshes and replays.
func TestExpiredAccessTokenIsRefreshedTransparently(t *testing.T) {
	base := startStub(t)
	ctx := context.Background()

	expiredAccess, liveRefresh, err := TokenPair(testSecret, "user@example.com", -time.Minute, RefreshTokenTTL)
	require.NoError(t, err)

	session := auth.NewSession(storage.NewMemoryStore())
	require.NoError(t, session.SetTokens(ctx, expiredAccess, liveRefresh))
	assert.True(t, session.Expired(ctx))

	tr := transport.New(base, 5*time.Second, session)
	resp, err := tr.Do(ctx, &transport.Request{Method: http.MethodGet, Path: "/auth/me"})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	// The session now holds a fresh pair.
	assert.False(t, session.Expired(ctx))
	access, err := session.AccessToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, expiredAccess, access)
}

func TestExpiredRefreshTokenEndsSession(t *testing.T) {
	base := startStub(t)
	ctx := context.Background()

	expiredAccess, expiredRefresh, err := TokenPair(testSecret, "user@example.com", -time.Minute, -time.Minute)
	require.NoError(t, err)

	session := auth.NewSession(storage.NewMemoryStore())
	require.NoError(t, session.SetTokens(ctx, expiredAccess, expiredRefresh))

	tr := transport.New(base, 5*time.Second, session)
	_, err = tr.Do(ctx, &transport.Request{Method: http.MethodGet, Path: "/auth/me"})
	require.Error(t, err)

	authed, err := session.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)
}

func TestAirtimeRejectsBadPayload(t *testing.T) {
	base := startStub(t)
	ctx := context.Background()

	access, refresh, err := TokenPair(testSecret, "user@example.com", AccessTokenTTL, RefreshTokenTTL)
	require.NoError(t, err)
	session := auth.NewSession(storage.NewMemoryStore())
	require.NoError(t, session.SetTokens(ctx, access, refresh))
	tr := transport.New(base, 5*time.Second, session)

	body, err := json.Marshal(map[string]any{"phoneNumber": "+2348031234567", "amount": -1})
	require.NoError(t, err)
	resp, err := tr.Do(ctx, &transport.Request{
		Method:      http.MethodPost,
		Path:        "/airtime",
		Body:        body,
		ContentType: "application/json",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, string(resp.Body), "Amount must be greater than 0")
}
