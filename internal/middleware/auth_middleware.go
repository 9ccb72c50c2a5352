package middleware

import (
	"context"
	"strings"

	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser  = "user"
	localToken = "token"
)

// SessionRestorer resolves a bearer token to the identity it was issued for.
type SessionRestorer interface {
	Restore(ctx context.Context, token string) (*model.Identity, error)
}

func Auth(sessions SessionRestorer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header must be 'Bearer <token>'"})
		}

		identity, err := sessions.Restore(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(localUser, *identity)
		c.Locals(localToken, parts[1])
		return c.Next()
	}
}

// CurrentUser returns the identity stored by Auth.
func CurrentUser(c *fiber.Ctx) (model.Identity, bool) {
	identity, ok := c.Locals(localUser).(model.Identity)
	return identity, ok
}

func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}
