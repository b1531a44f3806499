package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

// ErrAssignmentNotFound indicates the assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService manages work handed to students.
type AssignmentService interface {
	List(ctx context.Context) ([]dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (uint, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	students  repository.StudentRepository
	lessons   repository.LessonRepository
	validator *validator.Validate
	events    events.Publisher
	stats     StatsInvalidator
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService constructs the assignment service. publisher and stats may be nil.
func NewAssignmentService(repo repository.AssignmentRepository, students repository.StudentRepository, lessons repository.LessonRepository, validate *validator.Validate, publisher events.Publisher, stats StatsInvalidator, logger zerolog.Logger) AssignmentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &assignmentService{
		repo:      repo,
		students:  students,
		lessons:   lessons,
		validator: validate,
		events:    publisher,
		stats:     stats,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.List(ctx, repository.AssignmentFilter{Sort: repository.SortCreatedDesc})
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponses(assignments, s.now()), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (uint, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	if err := ensureStudent(ctx, s.students, payload.StudentID); err != nil {
		return 0, err
	}
	if err := ensureLesson(ctx, s.lessons, payload.LessonID); err != nil {
		return 0, err
	}

	assignment := models.Assignment{
		Title:       strings.TrimSpace(payload.Title),
		Description: sanitizePlain(payload.Description),
		StudentID:   payload.StudentID,
		LessonID:    payload.LessonID,
		Status:      models.AssignmentStatusPending,
	}
	if strings.TrimSpace(payload.DueDate) != "" {
		due, err := parseDate(payload.DueDate)
		if err != nil {
			return 0, err
		}
		assignment.DueDate = &due
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		return 0, err
	}
	invalidateStats(ctx, s.stats)

	s.events.Publish(ctx, events.SubjectAssignmentCreated, map[string]interface{}{
		"id":         assignment.ID,
		"student_id": assignment.StudentID,
	})
	return assignment.ID, nil
}

// Update replaces status, grade and feedback. A nil grade clears any recorded grade.
func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	assignment, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":   payload.Status,
		"grade":    payload.Grade,
		"feedback": sanitizePlain(payload.Feedback),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	invalidateStats(ctx, s.stats)

	if assignment.Status == models.AssignmentStatusGraded {
		s.events.Publish(ctx, events.SubjectAssignmentGraded, map[string]interface{}{
			"id":         assignment.ID,
			"student_id": assignment.StudentID,
			"grade":      assignment.Grade,
		})
	}
	return nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssignmentNotFound
	}
	if err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func ensureStudent(ctx context.Context, students repository.StudentRepository, id uint) error {
	if _, err := students.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

func ensureLesson(ctx context.Context, lessons repository.LessonRepository, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := lessons.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}
	return nil
}
