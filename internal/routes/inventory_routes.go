package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App, hdl *handler.InventoryHandler, auth fiber.Handler) {
	api := app.Group("/api/inventory", auth)
	api.Get("/items", hdl.ListItems)
	api.Get("/items/:id", hdl.GetItem)
	api.Post("/requests", hdl.RequestItem)
	api.Get("/requests/mine", hdl.MyRequests)

	admin := app.Group("/api/admin/inventory", auth, middleware.Role(model.RoleAdmin))
	admin.Post("/items", hdl.CreateItem)
	admin.Post("/items/import", hdl.ImportItems)
	admin.Put("/items/:id", hdl.UpdateItem)
	admin.Delete("/items/:id", hdl.DeleteItem)
	admin.Get("/low-stock", hdl.LowStock)
	admin.Get("/summary", hdl.Summary)
	admin.Get("/requests", hdl.ListRequests)
	admin.Put("/requests/:id/approve", hdl.ApproveRequest)
	admin.Put("/requests/:id/reject", hdl.RejectRequest)
}
