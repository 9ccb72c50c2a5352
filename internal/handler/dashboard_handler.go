package handler

import (
	"employee-portal/internal/model"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	attendance    *usecase.AttendanceUsecase
	leaves        *usecase.LeaveUsecase
	inventory     *usecase.InventoryUsecase
	notifications *usecase.NotificationUsecase
}

func NewDashboardHandler(attendance *usecase.AttendanceUsecase, leaves *usecase.LeaveUsecase, inventory *usecase.InventoryUsecase, notifications *usecase.NotificationUsecase) *DashboardHandler {
	return &DashboardHandler{
		attendance:    attendance,
		leaves:        leaves,
		inventory:     inventory,
		notifications: notifications,
	}
}

// GetStats gathers today's attendance, pending approvals, stock and
// notification counters for the admin dashboard.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	overview, err := h.attendance.DailyOverview(ctx, "")
	if err != nil {
		return writeError(c, err)
	}
	pendingLeaves, err := h.leaves.List(ctx, string(model.StatusPending))
	if err != nil {
		return writeError(c, err)
	}
	stock, err := h.inventory.Summary(ctx)
	if err != nil {
		return writeError(c, err)
	}
	unread, err := h.notifications.UnreadCount(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Dashboard stats loaded",
		"data": fiber.Map{
			"date":            overview.Date,
			"total_employees": overview.TotalEmployees,
			"present_today":   overview.PresentCount,
			"attendance_rate": overview.AttendanceRate,
			"pending_leaves":  len(pendingLeaves),
			"inventory":       stock,
			"unread":          unread,
		},
	})
}
