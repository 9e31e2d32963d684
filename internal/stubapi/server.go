// Package stubapi is a development stand-in for the real backend. It
// implements just enough of the API surface for the client to be
// exercised end to end: login, token refresh and a few transaction
// endpoints. The integration tests run against it; cmd/stubserver
// serves it standalone.
package stubapi

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New builds the stub application. Tokens are signed with secret.
func New(secret string) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{"email": "Email and password are required"},
			})
		}
		access, refresh, err := TokenPair(secret, body.Email, AccessTokenTTL, RefreshTokenTTL)
		if err != nil {
			log.Printf("stub login: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not issue tokens"})
		}
		return c.JSON(fiber.Map{
			"message":      "Login successful",
			"token":        access,
			"refreshToken": refresh,
			"user":         fiber.Map{"email": body.Email},
		})
	})

	app.Post("/auth/register", func(c *fiber.Ctx) error {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Phone    string `json:"phoneNumber"`
		}
		if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Password == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": fiber.Map{"email": "Email and password are required"},
			})
		}
		access, refresh, err := TokenPair(secret, body.Email, AccessTokenTTL, RefreshTokenTTL)
		if err != nil {
			log.Printf("stub register: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not issue tokens"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Registration successful",
			"token":        access,
			"refreshToken": refresh,
			"user":         fiber.Map{"email": body.Email, "phoneNumber": body.Phone},
		})
	})

	app.Post("/auth/refresh-token", func(c *fiber.Ctx) error {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing refresh token"})
		}
		subject, err := parseToken(secret, body.RefreshToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
		}
		access, refresh, err := TokenPair(secret, subject, AccessTokenTTL, RefreshTokenTTL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not issue tokens"})
		}
		return c.JSON(fiber.Map{
			"data": fiber.Map{"token": access, "refreshToken": refresh},
		})
	})

	authed := app.Group("", requireBearer(secret))

	authed.Get("/auth/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": fiber.Map{"email": c.Locals("subject")},
		})
	})

	authed.Post("/airtime", func(c *fiber.Ctx) error {
		var body struct {
			PhoneNumber string  `json:"phoneNumber"`
			Provider    string  `json:"provider"`
			Amount      float64 `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil || body.PhoneNumber == "" || body.Amount <= 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": []fiber.Map{{"amount": "Amount must be greater than 0"}},
			})
		}
		return c.JSON(fiber.Map{
			"data": fiber.Map{"id": uuid.NewString(), "status": "completed"},
		})
	})

	authed.Post("/bills", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": fiber.Map{"id": uuid.NewString(), "status": "completed"},
		})
	})

	authed.Post("/crypto/buy", cryptoHandler("buy"))
	authed.Post("/crypto/sell", cryptoHandler("sell"))

	return app
}

func cryptoHandler(side string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": fiber.Map{"id": uuid.NewString(), "side": side, "status": "pending"},
		})
	}
}

// requireBearer rejects requests without a valid bearer token, the way
// the real backend's auth middleware does.
func requireBearer(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}
		subject, err := parseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals("subject", subject)
		return c.Next()
	}
}
