package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, hdl *handler.AttendanceHandler, auth fiber.Handler) {
	api := app.Group("/api/attendance", auth)
	api.Post("/check-in", hdl.CheckIn)
	api.Post("/check-out", hdl.CheckOut)
	api.Get("/today", hdl.Today)
	api.Get("/history", hdl.History)
	api.Get("/summary", hdl.Summary)

	admin := app.Group("/api/admin/attendance", auth, middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.ListByDate)
	admin.Get("/overview", hdl.Overview)
}
