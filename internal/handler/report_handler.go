package handler

import (
	"fmt"
	"time"

	"employee-portal/internal/report"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	attendance *usecase.AttendanceUsecase
	inventory  *usecase.InventoryUsecase
}

func NewReportHandler(attendance *usecase.AttendanceUsecase, inventory *usecase.InventoryUsecase) *ReportHandler {
	return &ReportHandler{attendance: attendance, inventory: inventory}
}

// Attendance exports records between ?from= and ?to= (YYYY-MM-DD). The
// range defaults to the current month.
func (h *ReportHandler) Attendance(c *fiber.Ctx) error {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := c.Query("from", first.Format("2006-01-02"))
	to := c.Query("to", first.AddDate(0, 1, -1).Format("2006-01-02"))

	records, err := h.attendance.ListBetween(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	buf, err := report.AttendanceWorkbook(records, now)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="attendance_%s_%s.xlsx"`, from, to))
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	items, err := h.inventory.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	buf, err := report.InventoryWorkbook(items)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Send(buf.Bytes())
}
