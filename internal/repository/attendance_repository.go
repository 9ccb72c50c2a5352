package repository

import (
	"context"

	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	Update(ctx context.Context, record *model.AttendanceRecord) error
	// GetOpen returns the record of the given day that has no check-out yet.
	GetOpen(ctx context.Context, userID, date string) (*model.AttendanceRecord, error)
	// GetLatest returns the most recent record of the given day.
	GetLatest(ctx context.Context, userID, date string) (*model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	ListBetween(ctx context.Context, from, to string) ([]model.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

func (r *attendanceRepository) Update(ctx context.Context, record *model.AttendanceRecord) error {
	return updateByID(r.db.WithContext(ctx), record, record.ID, "created_at")
}

func (r *attendanceRepository) GetOpen(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND check_out IS NULL", userID, date).
		Order("check_in desc").
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *attendanceRepository) GetLatest(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("check_in desc").
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("check_in desc").Find(&list).Error
	return list, translate(err)
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.WithContext(ctx).Where("date = ?", date).Order("check_in desc").Find(&list).Error
	return list, translate(err)
}

func (r *attendanceRepository) ListBetween(ctx context.Context, from, to string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc, user_email asc, check_in asc").
		Find(&list).Error
	return list, translate(err)
}
