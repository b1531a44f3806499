package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/testutil"
)

func TestSeedServiceCreatesAccountsOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSeedService(repository.NewUserRepository(db), repository.NewStudentRepository(db), SeedConfig{
		AdminEmail:       "admin@arabicteacher.com",
		AdminPassword:    "admin123",
		AdminName:        "Arabic Teacher",
		DemoStudentEmail: "student@example.com",
		StudentPassword:  "student123",
	}, zerolog.Nop())

	svc.Run(context.Background())
	svc.Run(context.Background())

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, "Arabic Teacher", users[0].Name)
	require.True(t, auth.CheckPassword(users[0].PasswordHash, "admin123"))

	var students []models.Student
	require.NoError(t, db.Find(&students).Error)
	require.Len(t, students, 1)
	require.Equal(t, "Demo Student", students[0].Name)
	require.Equal(t, models.LevelBeginner, students[0].Level)
	require.True(t, students[0].IsActive())
	require.True(t, auth.CheckPassword(students[0].PasswordHash, "student123"))
}

func TestSeedServiceSkipsBlankConfig(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSeedService(repository.NewUserRepository(db), repository.NewStudentRepository(db), SeedConfig{}, zerolog.Nop())

	require.NotPanics(t, func() { svc.Run(context.Background()) })

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}
