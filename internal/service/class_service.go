package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

// ErrClassNotFound indicates the class does not exist.
var ErrClassNotFound = errors.New("class not found")

// ClassService manages the teaching schedule.
type ClassService interface {
	List(ctx context.Context) ([]dto.ClassResponse, error)
	Create(ctx context.Context, payload dto.ClassRequest) (uint, error)
	Update(ctx context.Context, id uint, payload dto.ClassRequest) error
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	repo      repository.ClassRepository
	students  repository.StudentRepository
	lessons   repository.LessonRepository
	validator *validator.Validate
	events    events.Publisher
	logger    zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo repository.ClassRepository, students repository.StudentRepository, lessons repository.LessonRepository, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) ClassService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &classService{
		repo:      repo,
		students:  students,
		lessons:   lessons,
		validator: validate,
		events:    publisher,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.List(ctx, repository.ClassFilter{Sort: repository.SortScheduledAsc})
	if err != nil {
		return nil, err
	}
	return dto.NewClassResponses(classes), nil
}

func (s *classService) Create(ctx context.Context, payload dto.ClassRequest) (uint, error) {
	class, err := s.fromRequest(ctx, payload)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Create(ctx, &class); err != nil {
		return 0, err
	}

	s.events.Publish(ctx, events.SubjectClassScheduled, map[string]interface{}{
		"id":             class.ID,
		"student_id":     class.StudentID,
		"scheduled_date": class.ScheduledDate,
	})
	return class.ID, nil
}

func (s *classService) Update(ctx context.Context, id uint, payload dto.ClassRequest) error {
	class, err := s.fromRequest(ctx, payload)
	if err != nil {
		return err
	}

	_, err = s.repo.Update(ctx, id, map[string]interface{}{
		"title":          class.Title,
		"student_id":     class.StudentID,
		"lesson_id":      class.LessonID,
		"scheduled_date": class.ScheduledDate,
		"duration":       class.Duration,
		"status":         class.Status,
		"notes":          class.Notes,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrClassNotFound
	}
	return err
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrClassNotFound
	}
	return err
}

func (s *classService) fromRequest(ctx context.Context, payload dto.ClassRequest) (models.Class, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Class{}, err
	}

	scheduled, err := parseDateTime(payload.ScheduledDate)
	if err != nil {
		return models.Class{}, err
	}

	if err := ensureStudent(ctx, s.students, payload.StudentID); err != nil {
		return models.Class{}, err
	}
	if err := ensureLesson(ctx, s.lessons, payload.LessonID); err != nil {
		return models.Class{}, err
	}

	return models.Class{
		Title:         strings.TrimSpace(payload.Title),
		StudentID:     payload.StudentID,
		LessonID:      payload.LessonID,
		ScheduledDate: scheduled,
		Duration:      durationOrDefault(payload.Duration),
		Status:        valueOr(payload.Status, models.ClassStatusScheduled),
		Notes:         sanitizePlain(payload.Notes),
	}, nil
}
