package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// DateLayout is the wire format of date-only values.
const DateLayout = "2006-01-02"

// StudentRequest is used for both create and full update.
type StudentRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Phone          string  `json:"phone" validate:"max=64"`
	Level          string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	EnrollmentDate string  `json:"enrollment_date"`
	Status         string  `json:"status" validate:"omitempty,oneof=active inactive graduated"`
	Notes          string  `json:"notes"`
	Password       string  `json:"password" validate:"omitempty,min=6,max=72"`
}

// StudentResponse is the public representation of a student row.
type StudentResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	Phone          string    `json:"phone"`
	Level          string    `json:"level"`
	EnrollmentDate string    `json:"enrollment_date"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStudentResponse maps a student model.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:             student.ID,
		Name:           student.Name,
		Email:          student.Email,
		Phone:          student.Phone,
		Level:          student.Level,
		EnrollmentDate: FormatDate(student.EnrollmentDate),
		Status:         student.Status,
		Notes:          student.Notes,
		CreatedAt:      student.CreatedAt,
	}
}

// NewStudentResponses maps a slice of students preserving order.
func NewStudentResponses(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}

// FormatDate renders a date-only column, or "" for the zero value.
func FormatDate(date datatypes.Date) string {
	value := time.Time(date)
	if value.IsZero() {
		return ""
	}
	return value.Format(DateLayout)
}

// CreatedResponse is the body of every successful create.
type CreatedResponse struct {
	ID uint `json:"id"`
}
