package model

type Holiday struct {
	ID          string `json:"id" gorm:"primaryKey;size:64"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Date        string `json:"date" gorm:"size:10;index"` // YYYY-MM-DD
	Description string `json:"description,omitempty" gorm:"type:text"`
}

func (Holiday) TableName() string {
	return "holidays"
}
