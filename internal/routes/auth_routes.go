package routes

import (
	"employee-portal/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the session endpoints. limit guards the
// credential endpoints against brute force.
func SetupAuthRoutes(app *fiber.App, hdl *handler.AuthHandler, auth, limit fiber.Handler) {
	app.Post("/api/login", limit, hdl.Login)
	app.Post("/api/register", limit, hdl.Register)

	api := app.Group("/api/session", auth)
	api.Get("/", hdl.Me)
	api.Delete("/", hdl.Logout)
}
