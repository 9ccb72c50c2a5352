package memory

import (
	"context"
	"sort"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

type notificationRepository struct {
	*store
	notifications []model.Notification
}

func (r *notificationRepository) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(n.ID) >= 0 {
		return repository.ErrDuplicate
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *notificationRepository) GetByID(_ context.Context, id string) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		n := r.notifications[i]
		return &n, nil
	}
	return nil, repository.ErrNotFound
}

func (r *notificationRepository) SetRead(_ context.Context, id string, read bool) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	r.notifications[i].IsRead = read
	n := r.notifications[i]
	return &n, nil
}

func (r *notificationRepository) List(_ context.Context, typ model.NotificationType) ([]model.Notification, error) {
	return r.list(func(n model.Notification) bool { return typ == "" || n.Type == typ }), nil
}

func (r *notificationRepository) ListByReceiver(_ context.Context, email string) ([]model.Notification, error) {
	return r.list(func(n model.Notification) bool { return n.ReceiverEmail == email }), nil
}

func (r *notificationRepository) CountUnread(_ context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, n := range r.notifications {
		if !n.IsRead && (email == "" || n.ReceiverEmail == email) {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) index(id string) int {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *notificationRepository) list(match func(model.Notification) bool) []model.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []model.Notification
	for _, n := range r.notifications {
		if match(n) {
			list = append(list, n)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list
}
