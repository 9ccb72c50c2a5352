package repository

import (
	"context"

	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type HolidayRepository interface {
	// GetAll returns the holidays sorted by date ascending.
	GetAll(ctx context.Context) ([]model.Holiday, error)
	Create(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, id string) error
	IsHoliday(ctx context.Context, date string) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	Update(ctx context.Context, holiday *model.Holiday) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db}
}

func (r *holidayRepository) GetAll(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).Order("date asc").Find(&holidays).Error
	return holidays, translate(err)
}

func (r *holidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return translate(r.db.WithContext(ctx).Create(holiday).Error)
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Holiday{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Holiday{}).Where("date = ?", date).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var holiday model.Holiday
	if err := r.db.WithContext(ctx).First(&holiday, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &holiday, nil
}

func (r *holidayRepository) Update(ctx context.Context, holiday *model.Holiday) error {
	return updateByID(r.db.WithContext(ctx), holiday, holiday.ID)
}
