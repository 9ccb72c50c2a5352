package handler

import (
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LeaveHandler struct {
	leaves *usecase.LeaveUsecase
}

func NewLeaveHandler(leaves *usecase.LeaveUsecase) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

type leaveRequest struct {
	FromDate string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" validate:"required,max=1000"`
}

func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	var req leaveRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	leave, err := h.leaves.SubmitLeaveRequest(c.UserContext(), currentUser(c), req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Leave request submitted", "data": leave})
}

func (h *LeaveHandler) Mine(c *fiber.Ctx) error {
	leaves, err := h.leaves.GetUserLeaveRequests(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": leaves})
}

func (h *LeaveHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.leaves.LeaveBalance(c.UserContext(), currentUser(c).ID, c.QueryInt("year"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": balance})
}

// List serves admins; ?status= narrows the result.
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	leaves, err := h.leaves.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": leaves})
}

func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	leave, err := h.leaves.ApproveLeave(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Leave request approved", "data": leave})
}

func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	leave, err := h.leaves.RejectLeave(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Leave request rejected", "data": leave})
}
