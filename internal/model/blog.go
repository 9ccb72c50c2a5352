package model

import "time"

type BlogPost struct {
	ID          string     `json:"id" gorm:"primaryKey;size:64"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Content     string     `json:"content" gorm:"type:text"`
	Author      string     `json:"author" gorm:"size:255"`
	AuthorEmail string     `json:"author_email" gorm:"size:255;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
