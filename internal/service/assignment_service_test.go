package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/testutil"
)

func newAssignmentService(t *testing.T) (AssignmentService, *gorm.DB, *memoryPublisher) {
	t.Helper()
	db := testutil.NewDB(t)
	publisher := &memoryPublisher{}
	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewStudentRepository(db),
		repository.NewLessonRepository(db),
		newValidator(),
		publisher,
		nil,
		zerolog.Nop(),
	)
	return svc, db, publisher
}

func TestAssignmentServiceCreateAndGrade(t *testing.T) {
	svc, db, publisher := newAssignmentService(t)
	ctx := context.Background()

	student := createStudent(t, db, models.Student{Name: "Ali"})
	lesson := models.Lesson{Title: "Numbers", Level: models.LevelBeginner}
	require.NoError(t, db.Create(&lesson).Error)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	id, err := svc.Create(ctx, dto.AssignmentCreateRequest{
		Title:     "Count to ten",
		StudentID: student.ID,
		LessonID:  &lesson.ID,
		DueDate:   yesterday,
	})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ali", list[0].StudentName)
	require.Equal(t, "Numbers", *list[0].LessonTitle)
	require.Equal(t, yesterday, *list[0].DueDate)
	require.Equal(t, models.AssignmentStatusPending, list[0].Status)
	require.True(t, list[0].Overdue)
	require.Nil(t, list[0].Grade)

	require.NoError(t, svc.Update(ctx, id, dto.AssignmentUpdateRequest{
		Status:   models.AssignmentStatusGraded,
		Grade:    floatPtr(0),
		Feedback: "Try again",
	}))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list[0].Grade)
	require.Zero(t, *list[0].Grade)
	require.False(t, list[0].Overdue)
	require.Equal(t, []string{events.SubjectAssignmentCreated, events.SubjectAssignmentGraded}, publisher.subjects())
}

func TestAssignmentServiceNotFound(t *testing.T) {
	svc, db, _ := newAssignmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.AssignmentCreateRequest{Title: "Orphan", StudentID: 42})
	require.ErrorIs(t, err, ErrStudentNotFound)

	student := createStudent(t, db, models.Student{Name: "Ali"})
	missingLesson := uint(99)
	_, err = svc.Create(ctx, dto.AssignmentCreateRequest{Title: "Bad lesson", StudentID: student.ID, LessonID: &missingLesson})
	require.ErrorIs(t, err, ErrLessonNotFound)

	err = svc.Update(ctx, 404, dto.AssignmentUpdateRequest{Status: models.AssignmentStatusCompleted})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 404), ErrAssignmentNotFound)
}

func TestAssignmentServiceRejectsOutOfRangeGrade(t *testing.T) {
	svc, _, _ := newAssignmentService(t)

	err := svc.Update(context.Background(), 1, dto.AssignmentUpdateRequest{Status: models.AssignmentStatusGraded, Grade: floatPtr(101)})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAssignmentNotFound)
}
