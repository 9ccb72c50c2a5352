package handler

import (
	"employee-portal/internal/model"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const defaultLatestLimit = 5

type NotificationHandler struct {
	notifications *usecase.NotificationUsecase
}

func NewNotificationHandler(notifications *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationRequest struct {
	Type          string `json:"type" validate:"required,oneof=System Task Leave Expense Inventory Email WhatsApp"`
	Message       string `json:"message" validate:"required,max=2000"`
	Sender        string `json:"sender" validate:"max=255"`
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
}

// Mine lists the caller's notifications; ?type= filters by category.
func (h *NotificationHandler) Mine(c *fiber.Ctx) error {
	list, err := h.notifications.FilterNotifications(c.UserContext(), currentUser(c).Email, c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *NotificationHandler) Latest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLatestLimit)
	if limit < 0 {
		limit = defaultLatestLimit
	}
	list, err := h.notifications.GetLatestNotifications(c.UserContext(), currentUser(c).Email, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

// UnreadCount reports the caller's unread count. Admins also get the
// count across all receivers.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := currentUser(c)
	mine, err := h.notifications.UnreadCountFor(c.UserContext(), user.Email)
	if err != nil {
		return writeError(c, err)
	}
	resp := fiber.Map{"unread": mine}
	if user.IsAdmin() {
		total, err := h.notifications.UnreadCount(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		resp["unread_all"] = total
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	return h.setRead(c, true)
}

func (h *NotificationHandler) MarkAsUnread(c *fiber.Ctx) error {
	return h.setRead(c, false)
}

func (h *NotificationHandler) setRead(c *fiber.Ctx, read bool) error {
	user := currentUser(c)
	n, err := h.notifications.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !user.IsAdmin() && n.ReceiverEmail != user.Email {
		return writeError(c, usecase.ErrNotificationNotFound)
	}

	if read {
		n, err = h.notifications.MarkAsRead(c.UserContext(), n.ID)
	} else {
		n, err = h.notifications.MarkAsUnread(c.UserContext(), n.ID)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": n})
}

// Create lets an admin send a notification. The sender defaults to the
// admin's email.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req notificationRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	sender := req.Sender
	if sender == "" {
		sender = currentUser(c).Email
	}

	n, err := h.notifications.AddNotification(c.UserContext(), model.NotificationType(req.Type), req.Message, sender, req.ReceiverEmail)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Notification sent", "data": n})
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list, err := h.notifications.List(c.UserContext(), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}
