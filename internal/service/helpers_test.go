package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func strPtr(value string) *string { return &value }

func floatPtr(value float64) *float64 { return &value }

func dayOf(t time.Time) *datatypes.Date {
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

func createStudent(t *testing.T, db *gorm.DB, student models.Student) models.Student {
	t.Helper()
	if student.Level == "" {
		student.Level = models.LevelBeginner
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File[field][0]
}

type memoryEvent struct {
	subject string
	payload interface{}
}

type memoryPublisher struct {
	mu     sync.Mutex
	events []memoryEvent
}

func (p *memoryPublisher) Publish(_ context.Context, subject string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, memoryEvent{subject: subject, payload: payload})
}

func (p *memoryPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.subject)
	}
	return out
}

type memoryStorage struct {
	files   map[string][]byte
	removed []string
	saveErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) Save(_ context.Context, name string, reader io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	path := "uploads/" + name
	s.files[path] = data
	return path, nil
}

func (s *memoryStorage) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	delete(s.files, path)
	return nil
}
