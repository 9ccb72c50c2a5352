package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupHolidayRoutes(app *fiber.App, hdl *handler.HolidayHandler, auth fiber.Handler) {
	api := app.Group("/api/holidays", auth)
	api.Get("/", hdl.GetAll)
	api.Get("/check", hdl.Check)

	admin := app.Group("/api/admin/holidays", auth, middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
