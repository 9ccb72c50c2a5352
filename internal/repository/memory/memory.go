// Package memory keeps every collection in process memory. It backs the
// STORAGE_DRIVER=memory mode and the usecase tests.
package memory

import (
	"sync"

	"employee-portal/internal/repository"
)

// store is shared by all repositories of one Set so that a single lock
// covers cross-collection updates such as request approval.
type store struct {
	mu sync.RWMutex
}

func NewSet() *repository.Set {
	s := &store{}
	return &repository.Set{
		Users:         &userRepository{store: s},
		Attendance:    &attendanceRepository{store: s},
		Leaves:        &leaveRepository{store: s},
		Inventory:     &inventoryRepository{store: s},
		Notifications: &notificationRepository{store: s},
		Holidays:      &holidayRepository{store: s},
		Blog:          &blogRepository{store: s},
	}
}
