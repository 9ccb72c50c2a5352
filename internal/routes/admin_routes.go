package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, hdl *handler.DashboardHandler, auth fiber.Handler) {
	api := app.Group("/api/admin/dashboard", auth, middleware.Role(model.RoleAdmin))
	api.Get("/", hdl.GetStats)
}

func SetupReportRoutes(app *fiber.App, hdl *handler.ReportHandler, auth fiber.Handler) {
	api := app.Group("/api/admin/reports", auth, middleware.Role(model.RoleAdmin))
	api.Get("/attendance.xlsx", hdl.Attendance)
	api.Get("/inventory.xlsx", hdl.Inventory)
}
