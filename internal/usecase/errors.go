package usecase

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidRole          = errors.New("invalid role")
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAlreadyCheckedIn     = errors.New("already checked in")
	ErrNotCheckedIn         = errors.New("no open check-in for today")
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrRequestNotFound      = errors.New("item request not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrHolidayNotFound      = errors.New("holiday not found")
	ErrPostNotFound         = errors.New("blog post not found")
	ErrAlreadyDecided       = errors.New("request already decided")
	ErrInsufficientStock    = errors.New("insufficient stock")
)
