package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/testutil"
)

func newStudentService(t *testing.T) (StudentService, *gorm.DB, *memoryPublisher) {
	t.Helper()
	db := testutil.NewDB(t)
	publisher := &memoryPublisher{}
	svc := NewStudentService(repository.NewStudentRepository(db), newValidator(), publisher, nil, "student123", zerolog.Nop())
	return svc, db, publisher
}

func TestStudentServiceCreateAppliesDefaults(t *testing.T) {
	svc, db, publisher := newStudentService(t)

	created, err := svc.Create(context.Background(), dto.StudentRequest{
		Name:  "  Yusuf ",
		Email: strPtr("Yusuf@Example.com"),
		Notes: "<script>alert(1)</script>Prefers mornings",
	})
	require.NoError(t, err)
	require.Equal(t, "Yusuf", created.Name)
	require.Equal(t, "yusuf@example.com", *created.Email)
	require.Equal(t, models.LevelBeginner, created.Level)
	require.Equal(t, models.StudentStatusActive, created.Status)
	require.Equal(t, "Prefers mornings", created.Notes)
	require.NotEmpty(t, created.EnrollmentDate)

	var stored models.Student
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.True(t, auth.CheckPassword(stored.PasswordHash, "student123"))
	require.Equal(t, []string{events.SubjectStudentCreated}, publisher.subjects())
}

func TestStudentServiceCreateWithPassword(t *testing.T) {
	svc, db, _ := newStudentService(t)

	created, err := svc.Create(context.Background(), dto.StudentRequest{Name: "Huda", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Nil(t, created.Email)

	var stored models.Student
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.True(t, auth.CheckPassword(stored.PasswordHash, "s3cret-pass"))
	require.False(t, auth.CheckPassword(stored.PasswordHash, "student123"))
}

func TestStudentServiceRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newStudentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.StudentRequest{Name: "One", Email: strPtr("same@example.com")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.StudentRequest{Name: "Two", Email: strPtr("same@example.com")})
	require.ErrorIs(t, err, ErrStudentEmailTaken)
}

func TestStudentServiceValidation(t *testing.T) {
	svc, _, _ := newStudentService(t)

	_, err := svc.Create(context.Background(), dto.StudentRequest{Name: "X", Level: "expert"})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), dto.StudentRequest{Name: "X", EnrollmentDate: "yesterday"})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestStudentServiceUpdateAndDelete(t *testing.T) {
	svc, _, _ := newStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StudentRequest{Name: "Sara", Email: strPtr("sara@example.com")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, dto.StudentRequest{
		Name:   "Sara K",
		Email:  strPtr("sara@example.com"),
		Level:  models.LevelAdvanced,
		Status: models.StudentStatusInactive,
	})
	require.NoError(t, err)
	require.Equal(t, "Sara K", updated.Name)
	require.Equal(t, models.LevelAdvanced, updated.Level)
	require.Equal(t, models.StudentStatusInactive, updated.Status)
	require.Equal(t, created.EnrollmentDate, updated.EnrollmentDate)

	_, err = svc.Update(ctx, 9999, dto.StudentRequest{Name: "Ghost"})
	require.ErrorIs(t, err, ErrStudentNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrStudentNotFound)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
