package handler

import (
	"errors"
	"log"
	"strings"

	"employee-portal/internal/geo"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"
	"employee-portal/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// bind parses the JSON body into req and validates its struct tags.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" failed "+fe.Tag())
			}
			return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// writeError maps usecase errors to HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrSessionNotFound):
		status = fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, usecase.ErrLeaveNotFound), errors.Is(err, usecase.ErrItemNotFound),
		errors.Is(err, usecase.ErrRequestNotFound), errors.Is(err, usecase.ErrNotificationNotFound),
		errors.Is(err, usecase.ErrHolidayNotFound), errors.Is(err, usecase.ErrPostNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateEmail), errors.Is(err, usecase.ErrAlreadyDecided),
		errors.Is(err, usecase.ErrAlreadyCheckedIn), errors.Is(err, usecase.ErrNotCheckedIn),
		errors.Is(err, usecase.ErrInsufficientStock):
		status = fiber.StatusConflict
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidRole):
		status = fiber.StatusBadRequest
	}

	msg := err.Error()
	if fe != nil {
		msg = fe.Message
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func currentUser(c *fiber.Ctx) model.Identity {
	identity, _ := middleware.CurrentUser(c)
	return identity
}

// locationRequest is embedded by requests that may carry the caller's position.
type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func (r locationRequest) locator() geo.Locator {
	if r.Latitude == nil || r.Longitude == nil {
		return geo.Unavailable{}
	}
	return geo.Fixed{Latitude: *r.Latitude, Longitude: *r.Longitude}
}
