package dto

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// ResourceCreateRequest is bound from the multipart form of a resource upload.
type ResourceCreateRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=255"`
	Type        string `form:"type" json:"type" validate:"required,oneof=document video audio worksheet"`
	Description string `form:"description" json:"description"`
	Level       string `form:"level" json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// ResourceResponse is the public representation of a resource.
type ResourceResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	FilePath    *string   `json:"file_path"`
	MimeType    string    `json:"mime_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewResourceResponses maps resources preserving order.
func NewResourceResponses(resources []models.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		responses = append(responses, ResourceResponse{
			ID:          resource.ID,
			Title:       resource.Title,
			Type:        resource.Type,
			FilePath:    resource.FilePath,
			MimeType:    resource.MimeType,
			SizeBytes:   resource.SizeBytes,
			Description: resource.Description,
			Level:       resource.Level,
			CreatedAt:   resource.CreatedAt,
		})
	}
	return responses
}
