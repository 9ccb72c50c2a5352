package routes

import (
	"employee-portal/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupBlogRoutes registers the blog endpoints. Authorship is checked by
// the usecase, so writes are open to every signed-in user.
func SetupBlogRoutes(app *fiber.App, hdl *handler.BlogHandler, auth fiber.Handler) {
	api := app.Group("/api/blog", auth)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.Get)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
