package stubapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL matches the backend's short-lived bearer token.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL matches the backend's long-lived refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair mints a signed HS256 access/refresh pair for subject. TTLs
// are parameters so tests can mint already-expired tokens.
func TokenPair(secret, subject string, accessTTL, refreshTTL time.Duration) (access, refresh string, err error) {
	if secret == "" {
		return "", "", errors.New("token secret not configured")
	}

	now := time.Now()
	mint := func(ttl time.Duration) (string, error) {
		claims := jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "movo-stub",
			Subject:   subject,
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	}

	if access, err = mint(accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = mint(refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// parseToken validates a token and returns its subject.
func parseToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
