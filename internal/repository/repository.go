package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrConflict          = errors.New("record changed concurrently")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Set bundles one repository per collection so that a storage backend can
// be swapped as a whole.
type Set struct {
	Users         UserRepository
	Attendance    AttendanceRepository
	Leaves        LeaveRepository
	Inventory     InventoryRepository
	Notifications NotificationRepository
	Holidays      HolidayRepository
	Blog          BlogRepository
}

func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Users:         NewUserRepository(db),
		Attendance:    NewAttendanceRepository(db),
		Leaves:        NewLeaveRepository(db),
		Inventory:     NewInventoryRepository(db),
		Notifications: NewNotificationRepository(db),
		Holidays:      NewHolidayRepository(db),
		Blog:          NewBlogRepository(db),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// updateByID overwrites every column of value except the key and the
// omitted ones on the row with id. It never inserts; a missing row is
// ErrNotFound.
func updateByID(db *gorm.DB, value interface{}, id string, omit ...string) error {
	res := db.Model(value).Where("id = ?", id).Select("*").Omit(append([]string{"id"}, omit...)...).Updates(value)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports unchanged rows as unaffected.
	var n int64
	if err := db.Model(value).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
