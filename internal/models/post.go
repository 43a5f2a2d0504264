package models

import (
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   Category  `json:"category"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `json:"user"`
	Image      *string   `json:"image"` // public path of the stored upload, nil when none
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
