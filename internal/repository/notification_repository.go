package repository

import (
	"context"

	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	SetRead(ctx context.Context, id string, read bool) (*model.Notification, error)
	// List returns notifications newest first, optionally narrowed to one type.
	List(ctx context.Context, typ model.NotificationType) ([]model.Notification, error)
	ListByReceiver(ctx context.Context, email string) ([]model.Notification, error)
	// CountUnread counts unread notifications of one receiver, or of everyone
	// when email is empty.
	CountUnread(ctx context.Context, email string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *notificationRepository) SetRead(ctx context.Context, id string, read bool) (*model.Notification, error) {
	n, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(n).Update("is_read", read).Error; err != nil {
		return nil, translate(err)
	}
	n.IsRead = read
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context, typ model.NotificationType) ([]model.Notification, error) {
	var list []model.Notification
	q := r.db.WithContext(ctx).Order("timestamp desc")
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	err := q.Find(&list).Error
	return list, translate(err)
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, email string) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).Where("receiver_email = ?", email).Order("timestamp desc").Find(&list).Error
	return list, translate(err)
}

func (r *notificationRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Notification{}).Where("is_read = ?", false)
	if email != "" {
		q = q.Where("receiver_email = ?", email)
	}
	err := q.Count(&count).Error
	return count, translate(err)
}
