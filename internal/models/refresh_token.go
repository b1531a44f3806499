package models

import "time"

const (
	SubjectTeacher = "teacher"
	SubjectStudent = "student"
)

// RefreshToken stores the hash of an issued refresh token so it can be rotated or revoked.
type RefreshToken struct {
	ID          uint       `gorm:"primaryKey"`
	SubjectType string     `gorm:"size:16;not null;index:idx_refresh_subject"`
	SubjectID   uint       `gorm:"not null;index:idx_refresh_subject"`
	TokenHash   string     `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt   time.Time  `gorm:"not null"`
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// Usable reports whether the token is neither revoked nor expired at the given time.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
