package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/observability"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

var (
	// ErrResourceNotFound indicates the resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
)

// FileStorage abstracts where uploaded resource files are kept.
type FileStorage interface {
	Save(ctx context.Context, name string, reader io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// ResourceService manages teaching resources and their optional files.
type ResourceService interface {
	List(ctx context.Context) ([]dto.ResourceResponse, error)
	Create(ctx context.Context, payload dto.ResourceCreateRequest, file *multipart.FileHeader) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	storage   FileStorage
	validator *validator.Validate
	events    events.Publisher
	maxSize   int64
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewResourceService constructs the resource service.
func NewResourceService(repo repository.ResourceRepository, storage FileStorage, validate *validator.Validate, publisher events.Publisher, maxSizeMB int, logger zerolog.Logger) ResourceService {
	if maxSizeMB <= 0 {
		maxSizeMB = 20
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &resourceService{
		repo:      repo,
		storage:   storage,
		validator: validate,
		events:    publisher,
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "resource_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/tutoring-api/internal/service/resource"),
	}
}

func (s *resourceService) List(ctx context.Context) ([]dto.ResourceResponse, error) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewResourceResponses(resources), nil
}

// Create stores the optional file first and then inserts the row. A failed insert
// leaves the stored file in place.
func (s *resourceService) Create(ctx context.Context, payload dto.ResourceCreateRequest, file *multipart.FileHeader) (uint, error) {
	ctx, span := s.tracer.Start(ctx, "resource.create")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return 0, err
	}

	resource := models.Resource{
		Title:       strings.TrimSpace(payload.Title),
		Type:        payload.Type,
		Description: sanitizePlain(payload.Description),
		Level:       strings.TrimSpace(payload.Level),
	}

	if file != nil {
		span.SetAttributes(
			attribute.String("upload.original_name", file.Filename),
			attribute.Int64("upload.request_size", file.Size),
		)

		stored, mime, size, err := s.store(ctx, file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upload failed")
			return 0, err
		}
		resource.FilePath = &stored
		resource.MimeType = mime
		resource.SizeBytes = size
	}

	if err := s.repo.Create(ctx, &resource); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return 0, err
	}

	s.events.Publish(ctx, events.SubjectResourceCreated, map[string]interface{}{
		"id":   resource.ID,
		"type": resource.Type,
	})
	span.SetStatus(codes.Ok, "stored")
	return resource.ID, nil
}

func (s *resourceService) store(ctx context.Context, file *multipart.FileHeader) (string, string, int64, error) {
	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return "", "", 0, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return "", "", 0, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return "", "", 0, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return "", "", 0, ErrUploadTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	name := file.Filename
	if filepath.Ext(name) == "" {
		name += detected.Extension()
	}

	stored, err := s.storage.Save(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		return "", "", 0, err
	}

	size := int64(buf.Len())
	observability.UploadBytes().Add(float64(size))
	s.logger.Info().Str("path", stored).Str("mime", detected.String()).Int64("size", size).Msg("resource file stored")
	return stored, detected.String(), size, nil
}

// Delete removes the row, then the stored file on a best-effort basis.
func (s *resourceService) Delete(ctx context.Context, id uint) error {
	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}

	if resource.FilePath != nil && s.storage != nil {
		if err := s.storage.Remove(ctx, *resource.FilePath); err != nil {
			s.logger.Warn().Err(err).Uint("resource_id", id).Msg("failed to remove resource file")
		}
	}
	return nil
}
