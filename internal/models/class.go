package models

import "time"

const (
	ClassStatusScheduled = "scheduled"
	ClassStatusCompleted = "completed"
	ClassStatusCancelled = "cancelled"
)

// Class is a scheduled teaching session with one student.
type Class struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	StudentID     uint      `gorm:"not null;index" json:"student_id"`
	LessonID      *uint     `gorm:"index" json:"lesson_id"`
	ScheduledDate time.Time `gorm:"not null;index" json:"scheduled_date"`
	Duration      int       `gorm:"not null;default:60" json:"duration"`
	Status        string    `gorm:"size:32;not null;default:scheduled" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	Student       *Student  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Lesson        *Lesson   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
