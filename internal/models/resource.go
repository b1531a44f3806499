package models

import "time"

const (
	ResourceTypeDocument  = "document"
	ResourceTypeVideo     = "video"
	ResourceTypeAudio     = "audio"
	ResourceTypeWorksheet = "worksheet"
)

// Resource is teaching material, optionally backed by an uploaded file.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Type        string    `gorm:"size:32;not null" json:"type"`
	FilePath    *string   `gorm:"size:512" json:"file_path"`
	MimeType    string    `gorm:"size:128" json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"size:32" json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}
