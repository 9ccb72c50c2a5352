package handler

import (
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	posts *usecase.BlogUsecase
}

func NewBlogHandler(posts *usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{posts: posts}
}

type postRequest struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content"`
	Author  string `json:"author" validate:"max=255"`
}

func (h *BlogHandler) GetAll(c *fiber.Ctx) error {
	posts, err := h.posts.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": posts})
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": post})
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var req postRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	post, err := h.posts.Add(c.UserContext(), currentUser(c), usecase.PostInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Post published", "data": post})
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	var req postRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	post, err := h.posts.Update(c.UserContext(), currentUser(c), c.Params("id"), usecase.PostInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post updated", "data": post})
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	if err := h.posts.Delete(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
