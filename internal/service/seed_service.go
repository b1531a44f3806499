package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

// SeedConfig describes the accounts created on first start.
type SeedConfig struct {
	AdminEmail       string
	AdminPassword    string
	AdminName        string
	DemoStudentEmail string
	StudentPassword  string
}

// SeedService creates the initial teacher account and a demo student.
type SeedService interface {
	Run(ctx context.Context)
}

type seedService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	cfg      SeedConfig
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSeedService constructs a seeding service.
func NewSeedService(users repository.UserRepository, students repository.StudentRepository, cfg SeedConfig, logger zerolog.Logger) SeedService {
	return &seedService{
		users:    users,
		students: students,
		cfg:      cfg,
		logger:   logger.With().Str("component", "seed_service").Logger(),
		now:      time.Now,
	}
}

// Run is idempotent. Failures are logged and never returned so startup continues.
func (s *seedService) Run(ctx context.Context) {
	if err := s.seedAdmin(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to seed admin account")
	}
	if err := s.seedDemoStudent(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to seed demo student")
	}
}

func (s *seedService) seedAdmin(ctx context.Context) error {
	email := normalizeEmail(s.cfg.AdminEmail)
	if email == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}

	if err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: hash, Name: s.cfg.AdminName}); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("admin account created")
	return nil
}

func (s *seedService) seedDemoStudent(ctx context.Context) error {
	email := normalizeEmail(s.cfg.DemoStudentEmail)
	if email == "" || s.cfg.StudentPassword == "" {
		return nil
	}

	_, err := s.students.GetActiveByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(s.cfg.StudentPassword)
	if err != nil {
		return err
	}

	student := models.Student{
		Name:           "Demo Student",
		Email:          &email,
		Level:          models.LevelBeginner,
		EnrollmentDate: today(s.now()),
		Status:         models.StudentStatusActive,
		PasswordHash:   hash,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	s.logger.Info().Str("email", email).Msg("demo student created")
	return nil
}
