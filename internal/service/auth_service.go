package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/observability"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers unknown accounts and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken is returned for unknown, revoked or expired refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService exchanges credentials for tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	StudentLogin(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, req dto.RefreshRequest) error
}

type authService struct {
	users     repository.UserRepository
	students  repository.StudentRepository
	refresh   repository.RefreshTokenRepository
	tokens    *auth.TokenManager
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, students repository.StudentRepository, refresh repository.RefreshTokenRepository, tokens *auth.TokenManager, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		students:  students,
		refresh:   refresh,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnComparison(req.Password)
			observability.LoginAttempts().WithLabelValues(auth.RoleTeacher, "rejected").Inc()
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		observability.LoginAttempts().WithLabelValues(auth.RoleTeacher, "rejected").Inc()
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	response, err := s.issue(ctx, auth.Identity{Role: auth.RoleTeacher, ID: user.ID, Email: user.Email})
	if err != nil {
		return dto.LoginResponse{}, err
	}
	response.User = &dto.TeacherProfile{ID: user.ID, Email: user.Email, Name: user.Name}

	observability.LoginAttempts().WithLabelValues(auth.RoleTeacher, "success").Inc()
	s.logger.Info().Uint("user_id", user.ID).Msg("teacher logged in")
	return response, nil
}

func (s *authService) StudentLogin(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	student, err := s.students.GetActiveByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnComparison(req.Password)
			observability.LoginAttempts().WithLabelValues(auth.RoleStudent, "rejected").Inc()
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !auth.CheckPassword(student.PasswordHash, req.Password) {
		observability.LoginAttempts().WithLabelValues(auth.RoleStudent, "rejected").Inc()
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	email := ""
	if student.Email != nil {
		email = *student.Email
	}

	response, err := s.issue(ctx, auth.Identity{Role: auth.RoleStudent, ID: student.ID, Email: email})
	if err != nil {
		return dto.LoginResponse{}, err
	}
	response.Student = &dto.StudentProfile{
		ID:             student.ID,
		Email:          email,
		Name:           student.Name,
		Level:          student.Level,
		EnrollmentDate: dto.FormatDate(student.EnrollmentDate),
	}

	observability.LoginAttempts().WithLabelValues(auth.RoleStudent, "success").Inc()
	s.logger.Info().Uint("student_id", student.ID).Msg("student logged in")
	return response, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new pair issued.
func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	claims, stored, err := s.lookup(ctx, req.RefreshToken)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	revoked, err := s.refresh.Revoke(ctx, stored.ID, s.now())
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !revoked {
		return dto.LoginResponse{}, ErrInvalidRefreshToken
	}

	identity, err := s.currentIdentity(ctx, claims)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return s.issue(ctx, identity)
}

func (s *authService) Logout(ctx context.Context, req dto.RefreshRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	if _, err := s.tokens.ParseRefresh(req.RefreshToken); err != nil {
		return nil
	}

	stored, err := s.refresh.GetByHash(ctx, auth.HashToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	_, err = s.refresh.Revoke(ctx, stored.ID, s.now())
	return err
}

func (s *authService) lookup(ctx context.Context, token string) (*auth.Claims, models.RefreshToken, error) {
	claims, err := s.tokens.ParseRefresh(token)
	if err != nil {
		return nil, models.RefreshToken{}, ErrInvalidRefreshToken
	}

	stored, err := s.refresh.GetByHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.RefreshToken{}, ErrInvalidRefreshToken
		}
		return nil, models.RefreshToken{}, err
	}

	if !stored.Usable(s.now()) || stored.SubjectType != claims.Role || stored.SubjectID != claims.SubjectID() {
		return nil, models.RefreshToken{}, ErrInvalidRefreshToken
	}

	return claims, stored, nil
}

// currentIdentity reloads the subject so deleted or deactivated accounts cannot refresh.
func (s *authService) currentIdentity(ctx context.Context, claims *auth.Claims) (auth.Identity, error) {
	if claims.Role == auth.RoleStudent {
		student, err := s.students.GetByID(ctx, claims.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auth.Identity{}, ErrInvalidRefreshToken
			}
			return auth.Identity{}, err
		}
		if !student.IsActive() || student.Email == nil {
			return auth.Identity{}, ErrInvalidRefreshToken
		}
		return auth.Identity{Role: auth.RoleStudent, ID: student.ID, Email: *student.Email}, nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Identity{}, ErrInvalidRefreshToken
		}
		return auth.Identity{}, err
	}
	return auth.Identity{Role: auth.RoleTeacher, ID: user.ID, Email: user.Email}, nil
}

func (s *authService) issue(ctx context.Context, identity auth.Identity) (dto.LoginResponse, error) {
	access, accessExpiry, err := s.tokens.IssueAccess(identity)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	refresh, refreshExpiry, err := s.tokens.IssueRefresh(identity)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	record := models.RefreshToken{
		SubjectType: identity.Role,
		SubjectID:   identity.ID,
		TokenHash:   auth.HashToken(refresh),
		ExpiresAt:   refreshExpiry,
	}
	if err := s.refresh.Create(ctx, &record); err != nil {
		return dto.LoginResponse{}, fmt.Errorf("store refresh token: %w", err)
	}

	return dto.LoginResponse{
		Token:            access,
		RefreshToken:     refresh,
		ExpiresAt:        accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}
