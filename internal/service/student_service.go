package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

var (
	// ErrStudentNotFound indicates the student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentEmailTaken indicates another student already uses the email.
	ErrStudentEmailTaken = errors.New("student email already registered")
)

// StudentService manages the teacher's student roster.
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	Create(ctx context.Context, payload dto.StudentRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo            repository.StudentRepository
	validator       *validator.Validate
	events          events.Publisher
	defaultPassword string
	stats           StatsInvalidator
	logger          zerolog.Logger
	now             func() time.Time
}

// NewStudentService constructs the student service. defaultPassword is hashed for
// students created without an explicit password. stats may be nil.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, publisher events.Publisher, stats StatsInvalidator, defaultPassword string, logger zerolog.Logger) StudentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &studentService{
		repo:            repo,
		validator:       validate,
		events:          publisher,
		defaultPassword: defaultPassword,
		stats:           stats,
		logger:          logger.With().Str("component", "student_service").Logger(),
		now:             time.Now,
	}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponses(students), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	enrolled := today(s.now())
	if strings.TrimSpace(payload.EnrollmentDate) != "" {
		parsed, err := parseDate(payload.EnrollmentDate)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		enrolled = parsed
	}

	password := payload.Password
	if password == "" {
		password = s.defaultPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		Name:           strings.TrimSpace(payload.Name),
		Email:          optionalEmail(payload.Email),
		Phone:          strings.TrimSpace(payload.Phone),
		Level:          valueOr(payload.Level, models.LevelBeginner),
		EnrollmentDate: enrolled,
		Status:         valueOr(payload.Status, models.StudentStatusActive),
		Notes:          sanitizePlain(payload.Notes),
		PasswordHash:   hash,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, ErrStudentEmailTaken
		}
		return dto.StudentResponse{}, err
	}

	s.events.Publish(ctx, events.SubjectStudentCreated, map[string]interface{}{
		"id":    student.ID,
		"level": student.Level,
	})
	invalidateStats(ctx, s.stats)
	s.logger.Info().Uint("student_id", student.ID).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

// Update replaces the editable fields; the password changes only when supplied.
func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	updates := map[string]interface{}{
		"name":   strings.TrimSpace(payload.Name),
		"email":  optionalEmail(payload.Email),
		"phone":  strings.TrimSpace(payload.Phone),
		"level":  valueOr(payload.Level, models.LevelBeginner),
		"status": valueOr(payload.Status, models.StudentStatusActive),
		"notes":  sanitizePlain(payload.Notes),
	}

	if strings.TrimSpace(payload.EnrollmentDate) != "" {
		parsed, err := parseDate(payload.EnrollmentDate)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["enrollment_date"] = parsed
	}

	if payload.Password != "" {
		hash, err := auth.HashPassword(payload.Password)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["password_hash"] = hash
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.StudentResponse{}, ErrStudentNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return dto.StudentResponse{}, ErrStudentEmailTaken
		default:
			return dto.StudentResponse{}, err
		}
	}
	invalidateStats(ctx, s.stats)

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	invalidateStats(ctx, s.stats)
	s.logger.Info().Uint("student_id", id).Msg("student deleted")
	return nil
}

func optionalEmail(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := normalizeEmail(*value)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func valueOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
