package dto

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// ClassRequest creates or replaces a scheduled class.
type ClassRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	StudentID     uint   `json:"student_id" validate:"required"`
	LessonID      *uint  `json:"lesson_id"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	Duration      int    `json:"duration" validate:"omitempty,gte=1,lte=600"`
	Status        string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes         string `json:"notes"`
}

// ClassResponse is a class joined with student and lesson display fields.
type ClassResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	StudentID     uint      `json:"student_id"`
	StudentName   string    `json:"student_name,omitempty"`
	LessonID      *uint     `json:"lesson_id"`
	LessonTitle   *string   `json:"lesson_title"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Duration      int       `json:"duration"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewClassResponses maps classes preserving order.
func NewClassResponses(classes []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		response := ClassResponse{
			ID:            class.ID,
			Title:         class.Title,
			StudentID:     class.StudentID,
			LessonID:      class.LessonID,
			ScheduledDate: class.ScheduledDate.UTC(),
			Duration:      class.Duration,
			Status:        class.Status,
			Notes:         class.Notes,
			CreatedAt:     class.CreatedAt,
		}
		if class.Student != nil {
			response.StudentName = class.Student.Name
		}
		if class.Lesson != nil {
			title := class.Lesson.Title
			response.LessonTitle = &title
		}
		responses = append(responses, response)
	}
	return responses
}
