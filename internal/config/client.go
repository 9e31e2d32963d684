package config

import "time"

// Client holds everything the API client needs to talk to the backend
// and persist its credentials.
type Client struct {
	BaseURL string
	Timeout time.Duration

	// Encrypted file credential store.
	SecureStorePath string
	SecureStoreKey  string // 32 bytes, hex or raw

	// Optional redis credential store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ClientFromEnv builds a client configuration from the environment.
func ClientFromEnv() Client {
	return Client{
		BaseURL:         GetEnv("API_BASE_URL", "http://localhost:5000/api/v1"),
		Timeout:         GetDurationEnv("API_TIMEOUT", 10*time.Second),
		SecureStorePath: GetEnv("SECURE_STORE_PATH", ".movo/credentials"),
		SecureStoreKey:  GetEnv("SECURE_STORE_KEY", ""),
		RedisAddr:       GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisDB:         GetIntEnv("REDIS_DB", 0),
	}
}
