package model

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the portal.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AttendanceRecord{},
		&LeaveRequest{},
		&InventoryItem{},
		&ItemRequest{},
		&Notification{},
		&Holiday{},
		&BlogPost{},
	)
}
