package memory

import (
	"context"
	"sort"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

type attendanceRepository struct {
	*store
	records []model.AttendanceRecord
}

func (r *attendanceRepository) Create(_ context.Context, record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == record.ID {
			return repository.ErrDuplicate
		}
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *attendanceRepository) Update(_ context.Context, record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == record.ID {
			r.records[i] = *record
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *attendanceRepository) GetOpen(_ context.Context, userID, date string) (*model.AttendanceRecord, error) {
	return r.latest(func(rec model.AttendanceRecord) bool {
		return rec.UserID == userID && rec.Date == date && rec.Open()
	})
}

func (r *attendanceRepository) GetLatest(_ context.Context, userID, date string) (*model.AttendanceRecord, error) {
	return r.latest(func(rec model.AttendanceRecord) bool {
		return rec.UserID == userID && rec.Date == date
	})
}

func (r *attendanceRepository) latest(match func(model.AttendanceRecord) bool) (*model.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *model.AttendanceRecord
	for i := range r.records {
		if !match(r.records[i]) {
			continue
		}
		if found == nil || r.records[i].CheckIn.After(found.CheckIn) {
			rec := r.records[i]
			found = &rec
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *attendanceRepository) ListByUser(_ context.Context, userID string) ([]model.AttendanceRecord, error) {
	list := r.filter(func(rec model.AttendanceRecord) bool { return rec.UserID == userID })
	sort.SliceStable(list, func(i, j int) bool { return list[i].CheckIn.After(list[j].CheckIn) })
	return list, nil
}

func (r *attendanceRepository) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	list := r.filter(func(rec model.AttendanceRecord) bool { return rec.Date == date })
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].UserEmail != list[j].UserEmail {
			return list[i].UserEmail < list[j].UserEmail
		}
		return list[i].CheckIn.Before(list[j].CheckIn)
	})
	return list, nil
}

func (r *attendanceRepository) ListBetween(_ context.Context, from, to string) ([]model.AttendanceRecord, error) {
	list := r.filter(func(rec model.AttendanceRecord) bool { return rec.Date >= from && rec.Date <= to })
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.UserEmail != b.UserEmail {
			return a.UserEmail < b.UserEmail
		}
		return a.CheckIn.Before(b.CheckIn)
	})
	return list, nil
}

func (r *attendanceRepository) filter(match func(model.AttendanceRecord) bool) []model.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []model.AttendanceRecord
	for _, rec := range r.records {
		if match(rec) {
			list = append(list, rec)
		}
	}
	return list
}
