package memory

import (
	"context"
	"sort"
	"time"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

type leaveRepository struct {
	*store
	leaves []model.LeaveRequest
}

func (r *leaveRepository) Create(_ context.Context, leave *model.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leaves {
		if l.ID == leave.ID {
			return repository.ErrDuplicate
		}
	}
	r.leaves = append(r.leaves, *leave)
	return nil
}

func (r *leaveRepository) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		l := r.leaves[i]
		return &l, nil
	}
	return nil, repository.ErrNotFound
}

func (r *leaveRepository) ListByUser(_ context.Context, userID string) ([]model.LeaveRequest, error) {
	return r.list(func(l model.LeaveRequest) bool { return l.UserID == userID }), nil
}

func (r *leaveRepository) List(_ context.Context, status model.ApprovalStatus) ([]model.LeaveRequest, error) {
	return r.list(func(l model.LeaveRequest) bool { return status == "" || l.Status == status }), nil
}

func (r *leaveRepository) Decide(_ context.Context, id string, status model.ApprovalStatus, decidedBy string, at time.Time) (*model.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	if r.leaves[i].Status != model.StatusPending {
		return nil, repository.ErrConflict
	}
	r.leaves[i].Status = status
	r.leaves[i].DecidedBy = decidedBy
	r.leaves[i].DecidedAt = &at
	l := r.leaves[i]
	return &l, nil
}

func (r *leaveRepository) index(id string) int {
	for i := range r.leaves {
		if r.leaves[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *leaveRepository) list(match func(model.LeaveRequest) bool) []model.LeaveRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []model.LeaveRequest
	for _, l := range r.leaves {
		if match(l) {
			list = append(list, l)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].SubmittedAt.After(list[j].SubmittedAt) })
	return list
}
