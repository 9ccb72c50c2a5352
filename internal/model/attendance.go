package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceCheckedIn AttendanceStatus = "checked-in"
)

// Location status of a check-in or check-out against the office geofence.
const (
	LocationValid   = "VALID"
	LocationInvalid = "INVALID"
	LocationUnknown = "UNKNOWN"
)

type AttendanceRecord struct {
	ID        string           `json:"id" gorm:"primaryKey;size:64"`
	UserID    string           `json:"user_id" gorm:"size:64;index:idx_attendance_user_date"`
	UserEmail string           `json:"user_email" gorm:"size:255"`
	CheckIn   time.Time        `json:"check_in"`
	CheckOut  *time.Time       `json:"check_out,omitempty"`
	Date      string           `json:"date" gorm:"size:10;index:idx_attendance_user_date"` // YYYY-MM-DD
	Status    AttendanceStatus `json:"status" gorm:"size:20"`

	CheckInLatitude       *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude      *float64 `json:"check_in_longitude,omitempty"`
	CheckInLocationStatus string   `json:"check_in_location_status" gorm:"size:10"`

	CheckOutLatitude       *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude      *float64 `json:"check_out_longitude,omitempty"`
	CheckOutLocationStatus string   `json:"check_out_location_status,omitempty" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// Open reports whether the record still waits for a check-out.
func (r AttendanceRecord) Open() bool {
	return r.CheckOut == nil
}

// Worked returns the time between check-in and check-out, or until now
// while the record is open.
func (r AttendanceRecord) Worked(now time.Time) time.Duration {
	end := now
	if r.CheckOut != nil {
		end = *r.CheckOut
	}
	if end.Before(r.CheckIn) {
		return 0
	}
	return end.Sub(r.CheckIn)
}
