package handler

import (
	"log"

	"employee-portal/internal/report"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct {
	inventory *usecase.InventoryUsecase
}

func NewInventoryHandler(inventory *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type createItemRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	SKU          string          `json:"sku" validate:"max=100"`
	Category     string          `json:"category" validate:"max=100"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Supplier     string          `json:"supplier" validate:"max=255"`
	DateAdded    string          `json:"date_added" validate:"omitempty,datetime=2006-01-02"`
}

type updateItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=255"`
	SKU          *string          `json:"sku" validate:"omitempty,max=100"`
	Category     *string          `json:"category" validate:"omitempty,max=100"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	Supplier     *string          `json:"supplier" validate:"omitempty,max=255"`
}

type itemRequestRequest struct {
	ItemID       string `json:"item_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	EmployeeName string `json:"employee_name" validate:"max=255"`
}

func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.inventory.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.inventory.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req createItemRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	item, err := h.inventory.AddItem(c.UserContext(), usecase.ItemInput{
		Name:         req.Name,
		SKU:          req.SKU,
		Category:     req.Category,
		Quantity:     req.Quantity,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Supplier:     req.Supplier,
		DateAdded:    req.DateAdded,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added", "data": item})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	item, err := h.inventory.UpdateItem(c.UserContext(), c.Params("id"), usecase.ItemPatch{
		Name:         req.Name,
		SKU:          req.SKU,
		Category:     req.Category,
		Quantity:     req.Quantity,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Supplier:     req.Supplier,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.inventory.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// ImportItems adds the items of an uploaded .xlsx file (form field "file").
func (h *InventoryHandler) ImportItems(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.NewError(fiber.StatusBadRequest, "File upload failed"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()

	parsed, err := report.ParseInventoryWorkbook(file)
	if err != nil {
		return writeError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}
	created, err := h.inventory.ImportItems(c.UserContext(), parsed)
	if err != nil && len(created) > 0 {
		log.Printf("import: %d items stored before failure: %v", len(created), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Import stopped partway", "data": created})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Items imported", "data": created})
}

func (h *InventoryHandler) RequestItem(c *fiber.Ctx) error {
	var req itemRequestRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	request, err := h.inventory.RequestItem(c.UserContext(), currentUser(c), req.ItemID, req.Quantity, req.EmployeeName)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Request submitted", "data": request})
}

func (h *InventoryHandler) MyRequests(c *fiber.Ctx) error {
	requests, err := h.inventory.ListRequestsByEmployee(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": requests})
}

func (h *InventoryHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := h.inventory.ListRequests(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": requests})
}

func (h *InventoryHandler) ApproveRequest(c *fiber.Ctx) error {
	request, item, err := h.inventory.ApproveRequest(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request approved", "data": fiber.Map{"request": request, "item": item}})
}

func (h *InventoryHandler) RejectRequest(c *fiber.Ctx) error {
	request, err := h.inventory.RejectRequest(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request rejected", "data": request})
}

func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.inventory.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.inventory.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": summary})
}
