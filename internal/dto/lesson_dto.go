package dto

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// LessonRequest creates or replaces a lesson.
type LessonRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Content     string `json:"content"`
	Duration    int    `json:"duration" validate:"omitempty,gte=1,lte=600"`
}

// LessonResponse is the public representation of a lesson.
type LessonResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Content     string    `json:"content"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewLessonResponses maps lessons preserving order.
func NewLessonResponses(lessons []models.Lesson) []LessonResponse {
	responses := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, LessonResponse{
			ID:          lesson.ID,
			Title:       lesson.Title,
			Description: lesson.Description,
			Level:       lesson.Level,
			Content:     lesson.Content,
			Duration:    lesson.Duration,
			CreatedAt:   lesson.CreatedAt,
		})
	}
	return responses
}
