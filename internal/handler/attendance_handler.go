package handler

import (
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendance *usecase.AttendanceUsecase
}

func NewAttendanceHandler(attendance *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type clockRequest struct {
	locationRequest
}

func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req clockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return writeError(c, err)
		}
	}

	record, err := h.attendance.CheckIn(c.UserContext(), currentUser(c), req.locator())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Checked in", "data": record})
}

func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var req clockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return writeError(c, err)
		}
	}

	record, err := h.attendance.CheckOut(c.UserContext(), currentUser(c), req.locator())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checked out", "data": record})
}

// Today returns the caller's latest record of the day; data is null when
// they have not checked in yet.
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	record, err := h.attendance.GetTodayAttendance(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": record})
}

func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	records, err := h.attendance.GetUserAttendance(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": records})
}

func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.attendance.Summary(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": summary})
}

// ListByDate serves admins; ?date=YYYY-MM-DD defaults to today.
func (h *AttendanceHandler) ListByDate(c *fiber.Ctx) error {
	records, err := h.attendance.ListByDate(c.UserContext(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": records})
}

func (h *AttendanceHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.attendance.DailyOverview(c.UserContext(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": overview})
}
