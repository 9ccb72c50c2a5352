package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID           string          `json:"id" gorm:"primaryKey;size:64"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	SKU          string          `json:"sku" gorm:"column:sku;size:100;index"`
	Category     string          `json:"category" gorm:"size:100"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price" gorm:"type:decimal(12,2)"`
	SellingPrice decimal.Decimal `json:"selling_price" gorm:"type:decimal(12,2)"`
	Supplier     string          `json:"supplier" gorm:"size:255"`
	DateAdded    string          `json:"date_added" gorm:"size:10"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

type ItemRequest struct {
	ID            string         `json:"id" gorm:"primaryKey;size:64"`
	ItemID        string         `json:"item_id" gorm:"size:64;index"`
	ItemName      string         `json:"item_name" gorm:"size:255"`
	EmployeeID    string         `json:"employee_id" gorm:"size:64;index"`
	EmployeeEmail string         `json:"employee_email" gorm:"size:255"`
	EmployeeName  string         `json:"employee_name" gorm:"size:255"`
	Quantity      int            `json:"quantity"`
	RequestDate   string         `json:"request_date" gorm:"size:10"`
	Status        ApprovalStatus `json:"status" gorm:"size:20;default:pending;index"`
	DecidedBy     string         `json:"decided_by,omitempty" gorm:"size:255"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (ItemRequest) TableName() string {
	return "item_requests"
}
