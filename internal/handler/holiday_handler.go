package handler

import (
	"time"

	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type HolidayHandler struct {
	holidays *usecase.HolidayUsecase
}

func NewHolidayHandler(holidays *usecase.HolidayUsecase) *HolidayHandler {
	return &HolidayHandler{holidays: holidays}
}

type holidayRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

func (h *HolidayHandler) GetAll(c *fiber.Ctx) error {
	data, err := h.holidays.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": data})
}

// Check reports whether ?date= (default today) is a holiday.
func (h *HolidayHandler) Check(c *fiber.Ctx) error {
	date := c.Query("date", time.Now().Format("2006-01-02"))
	holiday, err := h.holidays.IsHoliday(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"date": date, "is_holiday": holiday}})
}

func (h *HolidayHandler) Create(c *fiber.Ctx) error {
	var req holidayRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	holiday, err := h.holidays.Add(c.UserContext(), usecase.HolidayInput{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Holiday added", "data": holiday})
}

func (h *HolidayHandler) Update(c *fiber.Ctx) error {
	var req holidayRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	holiday, err := h.holidays.Update(c.UserContext(), c.Params("id"), usecase.HolidayInput{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Holiday updated", "data": holiday})
}

func (h *HolidayHandler) Delete(c *fiber.Ctx) error {
	if err := h.holidays.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Holiday deleted"})
}
