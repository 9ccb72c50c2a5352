package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
)

type HolidayInput struct {
	Name        string
	Date        string
	Description string
}

type HolidayUsecase struct {
	store
	repo repository.HolidayRepository
}

func NewHolidayUsecase(repo repository.HolidayRepository, opts Options) *HolidayUsecase {
	return &HolidayUsecase{store: store{opts: opts.withDefaults()}, repo: repo}
}

// List returns holidays ordered by date.
func (u *HolidayUsecase) List(ctx context.Context) ([]model.Holiday, error) {
	return u.repo.GetAll(ctx)
}

func (u *HolidayUsecase) IsHoliday(ctx context.Context, date string) (bool, error) {
	if !validDate(date) {
		return false, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return u.repo.IsHoliday(ctx, date)
}

func (u *HolidayUsecase) Add(ctx context.Context, in HolidayInput) (*model.Holiday, error) {
	done := u.begin()
	defer done()

	h := &model.Holiday{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
	}
	if err := validateHoliday(h); err != nil {
		return nil, err
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}
	return h, nil
}

func (u *HolidayUsecase) Update(ctx context.Context, id string, in HolidayInput) (*model.Holiday, error) {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	h, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHolidayNotFound
		}
		return nil, err
	}
	h.Name = strings.TrimSpace(in.Name)
	h.Date = in.Date
	h.Description = strings.TrimSpace(in.Description)
	if err := validateHoliday(h); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHolidayNotFound
		}
		return nil, err
	}
	return h, nil
}

func (u *HolidayUsecase) Delete(ctx context.Context, id string) error {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return err
	}
	err := u.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHolidayNotFound
	}
	return err
}

func validateHoliday(h *model.Holiday) error {
	if h.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !validDate(h.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}
