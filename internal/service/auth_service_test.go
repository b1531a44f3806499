package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/testutil"
)

type authFixture struct {
	svc    AuthService
	tokens *auth.TokenManager
}

func newAuthFixture(t *testing.T) (authFixture, func(models.Student) models.Student) {
	t.Helper()
	db := testutil.NewDB(t)

	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Email: "admin@arabicteacher.com", PasswordHash: hash, Name: "Arabic Teacher"}).Error)

	tokens := auth.NewTokenManager("access", "refresh", time.Hour, 24*time.Hour)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewStudentRepository(db),
		repository.NewRefreshTokenRepository(db),
		tokens,
		newValidator(),
		zerolog.Nop(),
	)

	return authFixture{svc: svc, tokens: tokens}, func(student models.Student) models.Student {
		return createStudent(t, db, student)
	}
}

func TestLoginIssuesTeacherToken(t *testing.T) {
	fx, _ := newAuthFixture(t)

	response, err := fx.svc.Login(context.Background(), dto.LoginRequest{Email: "admin@arabicteacher.com", Password: "admin123"})
	require.NoError(t, err)
	require.NotNil(t, response.User)
	require.Equal(t, "Arabic Teacher", response.User.Name)
	require.Nil(t, response.Student)

	claims, err := fx.tokens.ParseAccess(response.Token)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, claims.UserID)
	require.Equal(t, "admin@arabicteacher.com", claims.Email)
	require.Equal(t, auth.RoleTeacher, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	fx, _ := newAuthFixture(t)
	ctx := context.Background()

	_, unknown := fx.svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "admin123"})
	_, wrong := fx.svc.Login(ctx, dto.LoginRequest{Email: "admin@arabicteacher.com", Password: "nope"})
	_, malformed := fx.svc.Login(ctx, dto.LoginRequest{Email: "admin", Password: "admin123"})

	require.ErrorIs(t, unknown, ErrInvalidCredentials)
	require.ErrorIs(t, wrong, ErrInvalidCredentials)
	require.ErrorIs(t, malformed, ErrInvalidCredentials)
	require.Equal(t, unknown.Error(), wrong.Error())
}

func TestStudentLoginRequiresActiveStudentAndOwnPassword(t *testing.T) {
	fx, create := newAuthFixture(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("student123")
	require.NoError(t, err)
	active := create(models.Student{Name: "Amina", Email: strPtr("amina@example.com"), Level: models.LevelIntermediate, PasswordHash: hash})
	create(models.Student{Name: "Past", Email: strPtr("past@example.com"), Status: models.StudentStatusGraduated, PasswordHash: hash})

	response, err := fx.svc.StudentLogin(ctx, dto.LoginRequest{Email: "amina@example.com", Password: "student123"})
	require.NoError(t, err)
	require.NotNil(t, response.Student)
	require.Equal(t, models.LevelIntermediate, response.Student.Level)

	claims, err := fx.tokens.ParseAccess(response.Token)
	require.NoError(t, err)
	require.Equal(t, active.ID, claims.StudentID)
	require.Equal(t, "student", claims.Type)
	require.Equal(t, auth.RoleStudent, claims.Role)

	_, err = fx.svc.StudentLogin(ctx, dto.LoginRequest{Email: "past@example.com", Password: "student123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = fx.svc.StudentLogin(ctx, dto.LoginRequest{Email: "amina@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	fx, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := fx.svc.Login(ctx, dto.LoginRequest{Email: "admin@arabicteacher.com", Password: "admin123"})
	require.NoError(t, err)

	rotated, err := fx.svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	_, err = fx.svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = fx.svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: "garbage"})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	fx, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := fx.svc.Login(ctx, dto.LoginRequest{Email: "admin@arabicteacher.com", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Logout(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken}))
	require.NoError(t, fx.svc.Logout(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken}))

	_, err = fx.svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
