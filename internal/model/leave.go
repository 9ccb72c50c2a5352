package model

import "time"

// ApprovalStatus is shared by leave requests and item requests.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

const DateLayout = "2006-01-02"

type LeaveRequest struct {
	ID          string         `json:"id" gorm:"primaryKey;size:64"`
	UserID      string         `json:"user_id" gorm:"size:64;index"`
	UserEmail   string         `json:"user_email" gorm:"size:255"`
	FromDate    string         `json:"from_date" gorm:"size:10"`
	ToDate      string         `json:"to_date" gorm:"size:10"`
	Reason      string         `json:"reason" gorm:"type:text"`
	Status      ApprovalStatus `json:"status" gorm:"size:20;default:pending;index"`
	SubmittedAt time.Time      `json:"submitted_at"`
	DecidedBy   string         `json:"decided_by,omitempty" gorm:"size:255"`
	DecidedAt   *time.Time     `json:"decided_at,omitempty"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Days counts the calendar days of the request, both ends included.
func (l LeaveRequest) Days() int {
	from, err := time.Parse(DateLayout, l.FromDate)
	if err != nil {
		return 0
	}
	to, err := time.Parse(DateLayout, l.ToDate)
	if err != nil {
		return 0
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}
