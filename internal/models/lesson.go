package models

import "time"

// Lesson is a unit of teaching material targeted at one level.
type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"size:32;not null;index" json:"level"`
	Content     string    `gorm:"type:text" json:"content"`
	Duration    int       `gorm:"not null;default:60" json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}
