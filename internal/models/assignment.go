package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusCompleted = "completed"
	AssignmentStatusGraded    = "graded"
)

// Assignment is work given to a single student, optionally tied to a lesson.
type Assignment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	StudentID   uint            `gorm:"not null;index" json:"student_id"`
	LessonID    *uint           `gorm:"index" json:"lesson_id"`
	DueDate     *datatypes.Date `json:"due_date"`
	Status      string          `gorm:"size:32;not null;default:pending;index" json:"status"`
	Grade       *float64        `json:"grade"`
	Feedback    string          `gorm:"type:text" json:"feedback"`
	CreatedAt   time.Time       `json:"created_at"`
	Student     *Student        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Lesson      *Lesson         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// IsOverdue reports whether a pending assignment's due day lies before the UTC day of reference.
// An assignment due today is not overdue.
func (a Assignment) IsOverdue(reference time.Time) bool {
	if a.Status != AssignmentStatusPending || a.DueDate == nil {
		return false
	}

	due := time.Time(*a.DueDate)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	reference = reference.UTC()
	today := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	return dueDay.Before(today)
}

// IsGraded reports whether a grade has been recorded.
func (a Assignment) IsGraded() bool {
	return a.Grade != nil
}
