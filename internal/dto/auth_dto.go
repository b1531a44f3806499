package dto

import "time"

// LoginRequest is the credential payload for both teacher and student login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for rotation or revocation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TeacherProfile is the public view of a teacher account.
type TeacherProfile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// StudentProfile is the public view of a logged-in student.
type StudentProfile struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Level          string `json:"level"`
	EnrollmentDate string `json:"enrollment_date"`
}

// LoginResponse is returned by every credential exchange.
type LoginResponse struct {
	Token            string          `json:"token"`
	RefreshToken     string          `json:"refresh_token"`
	ExpiresAt        time.Time       `json:"expires_at"`
	RefreshExpiresAt time.Time       `json:"refresh_expires_at"`
	User             *TeacherProfile `json:"user,omitempty"`
	Student          *StudentProfile `json:"student,omitempty"`
}
