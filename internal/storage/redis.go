package storage

import (
	"context"
	"errors"

	"movo/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client from the client configuration.
func NewRedisClient(cfg config.Client) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisStore keeps the credentials in redis. Suited to headless
// deployments where several workers share one session.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, accessTokenKey)
}

func (s *RedisStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, refreshTokenKey)
}

func (s *RedisStore) SetTokens(ctx context.Context, access, refresh string) error {
	return s.client.MSet(ctx, accessTokenKey, access, refreshTokenKey, refresh).Err()
}

func (s *RedisStore) DeleteAccessToken(ctx context.Context) error {
	return s.client.Del(ctx, accessTokenKey).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, accessTokenKey, refreshTokenKey).Err()
}

func (s *RedisStore) HasAccessToken(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, accessTokenKey).Result()
	return n > 0, err
}

// HealthCheck pings the redis backend.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
