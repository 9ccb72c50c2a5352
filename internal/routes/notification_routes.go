package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, hdl *handler.NotificationHandler, auth fiber.Handler) {
	api := app.Group("/api/notifications", auth)
	api.Get("/", hdl.Mine)
	api.Get("/latest", hdl.Latest)
	api.Get("/unread-count", hdl.UnreadCount)
	api.Put("/:id/read", hdl.MarkAsRead)
	api.Put("/:id/unread", hdl.MarkAsUnread)

	admin := app.Group("/api/admin/notifications", auth, middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.List)
	admin.Post("/", hdl.Create)
}
