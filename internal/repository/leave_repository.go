package repository

import (
	"context"
	"time"

	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.LeaveRequest, error)
	// List returns every request, or only those in status when it is not empty.
	List(ctx context.Context, status model.ApprovalStatus) ([]model.LeaveRequest, error)
	// Decide moves a pending request to status. It fails with ErrConflict
	// when the request is no longer pending.
	Decide(ctx context.Context, id string, status model.ApprovalStatus, decidedBy string, at time.Time) (*model.LeaveRequest, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return translate(r.db.WithContext(ctx).Create(leave).Error)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	if err := r.db.WithContext(ctx).First(&leave, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &leave, nil
}

func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("submitted_at desc").Find(&list).Error
	return list, translate(err)
}

func (r *leaveRepository) List(ctx context.Context, status model.ApprovalStatus) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	q := r.db.WithContext(ctx).Order("submitted_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, translate(err)
}

func (r *leaveRepository) Decide(ctx context.Context, id string, status model.ApprovalStatus, decidedBy string, at time.Time) (*model.LeaveRequest, error) {
	res := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": at,
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the id is unknown or someone else decided first.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return r.GetByID(ctx, id)
}
