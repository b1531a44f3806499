package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// LevelBeginner is the entry proficiency tier.
	LevelBeginner = "beginner"
	// LevelIntermediate is the middle proficiency tier.
	LevelIntermediate = "intermediate"
	// LevelAdvanced is the top proficiency tier.
	LevelAdvanced = "advanced"
)

const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusGraduated = "graduated"
)

// Student represents a learner taught by the teacher.
type Student struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Email          *string        `gorm:"size:255;uniqueIndex" json:"email"`
	Phone          string         `gorm:"size:64" json:"phone"`
	Level          string         `gorm:"size:32;not null;default:beginner;index" json:"level"`
	EnrollmentDate datatypes.Date `json:"enrollment_date"`
	Status         string         `gorm:"size:32;not null;default:active;index" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes"`
	PasswordHash   string         `gorm:"size:255" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IsActive reports whether the student may log in.
func (s Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
