package memory

import (
	"context"
	"sort"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

// holidayRepository keeps holidays sorted by date after every mutation.
type holidayRepository struct {
	*store
	holidays []model.Holiday
}

func (r *holidayRepository) GetAll(_ context.Context) ([]model.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Holiday(nil), r.holidays...), nil
}

func (r *holidayRepository) Create(_ context.Context, holiday *model.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(holiday.ID) >= 0 {
		return repository.ErrDuplicate
	}
	r.holidays = append(r.holidays, *holiday)
	r.sort()
	return nil
}

func (r *holidayRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
	return nil
}

func (r *holidayRepository) IsHoliday(_ context.Context, date string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.holidays {
		if h.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *holidayRepository) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		h := r.holidays[i]
		return &h, nil
	}
	return nil, repository.ErrNotFound
}

func (r *holidayRepository) Update(_ context.Context, holiday *model.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(holiday.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.holidays[i] = *holiday
	r.sort()
	return nil
}

func (r *holidayRepository) index(id string) int {
	for i := range r.holidays {
		if r.holidays[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *holidayRepository) sort() {
	sort.SliceStable(r.holidays, func(i, j int) bool { return r.holidays[i].Date < r.holidays[j].Date })
}
