package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

// ErrLessonNotFound indicates the lesson does not exist.
var ErrLessonNotFound = errors.New("lesson not found")

const defaultDuration = 60

// LessonService manages teaching material.
type LessonService interface {
	List(ctx context.Context) ([]dto.LessonResponse, error)
	Create(ctx context.Context, payload dto.LessonRequest) (uint, error)
	Update(ctx context.Context, id uint, payload dto.LessonRequest) error
	Delete(ctx context.Context, id uint) error
}

type lessonService struct {
	repo      repository.LessonRepository
	validator *validator.Validate
	stats     StatsInvalidator
	logger    zerolog.Logger
}

// NewLessonService constructs the lesson service. stats may be nil.
func NewLessonService(repo repository.LessonRepository, validate *validator.Validate, stats StatsInvalidator, logger zerolog.Logger) LessonService {
	return &lessonService{
		repo:      repo,
		validator: validate,
		stats:     stats,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) List(ctx context.Context) ([]dto.LessonResponse, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewLessonResponses(lessons), nil
}

func (s *lessonService) Create(ctx context.Context, payload dto.LessonRequest) (uint, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	lesson := models.Lesson{
		Title:       strings.TrimSpace(payload.Title),
		Description: sanitizePlain(payload.Description),
		Level:       payload.Level,
		Content:     sanitizeRich(payload.Content),
		Duration:    durationOrDefault(payload.Duration),
	}
	if err := s.repo.Create(ctx, &lesson); err != nil {
		return 0, err
	}
	invalidateStats(ctx, s.stats)
	return lesson.ID, nil
}

func (s *lessonService) Update(ctx context.Context, id uint, payload dto.LessonRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	_, err := s.repo.Update(ctx, id, map[string]interface{}{
		"title":       strings.TrimSpace(payload.Title),
		"description": sanitizePlain(payload.Description),
		"level":       payload.Level,
		"content":     sanitizeRich(payload.Content),
		"duration":    durationOrDefault(payload.Duration),
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLessonNotFound
	}
	if err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLessonNotFound
	}
	if err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return defaultDuration
	}
	return minutes
}
