package dto

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// AssignmentCreateRequest describes new work for a student.
type AssignmentCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	StudentID   uint   `json:"student_id" validate:"required"`
	LessonID    *uint  `json:"lesson_id"`
	DueDate     string `json:"due_date"`
}

// AssignmentUpdateRequest replaces the grading fields of an assignment.
type AssignmentUpdateRequest struct {
	Status   string   `json:"status" validate:"required,oneof=pending completed graded"`
	Grade    *float64 `json:"grade" validate:"omitempty,gte=0,lte=100"`
	Feedback string   `json:"feedback"`
}

// AssignmentResponse is an assignment joined with student and lesson display fields.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	LessonID    *uint     `json:"lesson_id"`
	LessonTitle *string   `json:"lesson_title"`
	DueDate     *string   `json:"due_date"`
	Status      string    `json:"status"`
	Grade       *float64  `json:"grade"`
	Feedback    string    `json:"feedback"`
	Overdue     bool      `json:"overdue"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAssignmentResponse maps an assignment; Student and Lesson are used when preloaded.
func NewAssignmentResponse(assignment models.Assignment, now time.Time) AssignmentResponse {
	response := AssignmentResponse{
		ID:          assignment.ID,
		Title:       assignment.Title,
		Description: assignment.Description,
		StudentID:   assignment.StudentID,
		LessonID:    assignment.LessonID,
		Status:      assignment.Status,
		Grade:       assignment.Grade,
		Feedback:    assignment.Feedback,
		Overdue:     assignment.IsOverdue(now),
		CreatedAt:   assignment.CreatedAt,
	}
	if assignment.DueDate != nil {
		due := FormatDate(*assignment.DueDate)
		response.DueDate = &due
	}
	if assignment.Student != nil {
		response.StudentName = assignment.Student.Name
	}
	if assignment.Lesson != nil {
		title := assignment.Lesson.Title
		response.LessonTitle = &title
	}
	return response
}

// NewAssignmentResponses maps assignments preserving order.
func NewAssignmentResponses(assignments []models.Assignment, now time.Time) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment, now))
	}
	return responses
}
