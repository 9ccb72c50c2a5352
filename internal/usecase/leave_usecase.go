package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
)

// AnnualLeaveDays is the yearly leave entitlement per employee.
const AnnualLeaveDays = 20

type LeaveBalance struct {
	Year      int `json:"year"`
	Entitled  int `json:"entitled"`
	Used      int `json:"used"`
	Pending   int `json:"pending"`
	Remaining int `json:"remaining"`
}

type LeaveUsecase struct {
	store
	repo     repository.LeaveRepository
	notifier Notifier
	locks    keyedMutex
}

func NewLeaveUsecase(repo repository.LeaveRepository, notifier Notifier, opts Options) *LeaveUsecase {
	return &LeaveUsecase{
		store:    store{opts: opts.withDefaults()},
		repo:     repo,
		notifier: notifier,
	}
}

func (u *LeaveUsecase) SubmitLeaveRequest(ctx context.Context, who model.Identity, from, to, reason string) (*model.LeaveRequest, error) {
	done := u.begin()
	defer done()

	if !validDate(from) || !validDate(to) {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
	}
	if from > to {
		return nil, fmt.Errorf("%w: from date is after to date", ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	leave := &model.LeaveRequest{
		ID:          uuid.NewString(),
		UserID:      who.ID,
		UserEmail:   who.Email,
		FromDate:    from,
		ToDate:      to,
		Reason:      reason,
		Status:      model.StatusPending,
		SubmittedAt: u.now(),
	}
	if err := u.repo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return leave, nil
}

func (u *LeaveUsecase) ApproveLeave(ctx context.Context, id string, approver model.Identity) (*model.LeaveRequest, error) {
	return u.decide(ctx, id, model.StatusApproved, approver)
}

func (u *LeaveUsecase) RejectLeave(ctx context.Context, id string, approver model.Identity) (*model.LeaveRequest, error) {
	return u.decide(ctx, id, model.StatusRejected, approver)
}

// decide moves a pending request to status. A request can be decided once;
// later attempts fail with ErrAlreadyDecided.
func (u *LeaveUsecase) decide(ctx context.Context, id string, status model.ApprovalStatus, approver model.Identity) (*model.LeaveRequest, error) {
	done := u.begin()
	defer done()

	unlock := u.locks.Lock(id)
	defer unlock()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	leave, err := u.repo.Decide(ctx, id, status, approver.Email, u.now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrLeaveNotFound
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrAlreadyDecided
	case err != nil:
		return nil, err
	}

	msg := fmt.Sprintf("Your leave request from %s to %s has been %s.", leave.FromDate, leave.ToDate, status)
	notify(ctx, u.notifier, model.NotificationLeave, msg, approver.Email, leave.UserEmail)
	return leave, nil
}

func (u *LeaveUsecase) Get(ctx context.Context, id string) (*model.LeaveRequest, error) {
	leave, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLeaveNotFound
	}
	return leave, err
}

func (u *LeaveUsecase) GetUserLeaveRequests(ctx context.Context, userID string) ([]model.LeaveRequest, error) {
	return u.repo.ListByUser(ctx, userID)
}

// List returns all leave requests, optionally only those in status.
func (u *LeaveUsecase) List(ctx context.Context, status string) ([]model.LeaveRequest, error) {
	s := model.ApprovalStatus(status)
	if s != "" && !s.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return u.repo.List(ctx, s)
}

// LeaveBalance counts the leave days userID has taken in year. Requests
// that span a year boundary count only their days inside year.
func (u *LeaveUsecase) LeaveBalance(ctx context.Context, userID string, year int) (*LeaveBalance, error) {
	if year == 0 {
		year = u.now().Year()
	}
	leaves, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &LeaveBalance{Year: year, Entitled: AnnualLeaveDays}
	for _, l := range leaves {
		days := daysInYear(l, year)
		switch l.Status {
		case model.StatusApproved:
			b.Used += days
		case model.StatusPending:
			b.Pending += days
		}
	}
	b.Remaining = b.Entitled - b.Used
	if b.Remaining < 0 {
		b.Remaining = 0
	}
	return b, nil
}

func daysInYear(l model.LeaveRequest, year int) int {
	from, err := time.Parse(model.DateLayout, l.FromDate)
	if err != nil {
		return 0
	}
	to, err := time.Parse(model.DateLayout, l.ToDate)
	if err != nil {
		return 0
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if from.Before(start) {
		from = start
	}
	if to.After(end) {
		to = end
	}
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
