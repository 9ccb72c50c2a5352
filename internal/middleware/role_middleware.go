package middleware

import (
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Role lets the request through only for the listed roles. It must run
// after Auth.
func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: no role"})
		}

		for _, role := range allowedRoles {
			if role == identity.Role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}
}
