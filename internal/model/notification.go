package model

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationSystem    NotificationType = "System"
	NotificationTask      NotificationType = "Task"
	NotificationLeave     NotificationType = "Leave"
	NotificationExpense   NotificationType = "Expense"
	NotificationInventory NotificationType = "Inventory"
	NotificationEmail     NotificationType = "Email"
	NotificationWhatsApp  NotificationType = "WhatsApp"
)

// NotificationTypes lists every category in display order.
var NotificationTypes = []NotificationType{
	NotificationSystem,
	NotificationTask,
	NotificationLeave,
	NotificationExpense,
	NotificationInventory,
	NotificationEmail,
	NotificationWhatsApp,
}

func ParseNotificationType(s string) (NotificationType, error) {
	for _, t := range NotificationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

type Notification struct {
	ID            string           `json:"id" gorm:"primaryKey;size:64"`
	Type          NotificationType `json:"type" gorm:"size:20;index"`
	Message       string           `json:"message" gorm:"type:text"`
	Sender        string           `json:"sender" gorm:"size:255"`
	ReceiverEmail string           `json:"receiver_email" gorm:"size:255;index"`
	Timestamp     time.Time        `json:"timestamp" gorm:"index"`
	IsRead        bool             `json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}
