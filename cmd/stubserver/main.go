// Package main serves the stub backend for local development, so the
// client can be exercised without the real API.
package main

import (
	"log"

	"movo/internal/config"
	"movo/internal/stubapi"
)

func main() {
	config.LoadEnv()

	secret := config.GetEnv("JWT_SECRET", "dev-secret")
	app := stubapi.New(secret)

	addr := ":" + config.GetEnv("PORT", "5000")
	log.Printf("stub backend listening on %s", addr)
	log.Fatal(app.Listen(addr))
}
