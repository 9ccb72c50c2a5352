package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaveRoutes(app *fiber.App, hdl *handler.LeaveHandler, auth fiber.Handler) {
	api := app.Group("/api/leaves", auth)
	api.Post("/", hdl.Submit)
	api.Get("/mine", hdl.Mine)
	api.Get("/balance", hdl.Balance)

	admin := app.Group("/api/admin/leaves", auth, middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.List)
	admin.Put("/:id/approve", hdl.Approve)
	admin.Put("/:id/reject", hdl.Reject)
}
