package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

const portalPreviewSize = 5

// StudentPortalService serves a logged-in student's own data.
type StudentPortalService interface {
	Dashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
	Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error)
	Classes(ctx context.Context, studentID uint) ([]dto.ClassResponse, error)
	Lessons(ctx context.Context, studentID uint) ([]dto.LessonResponse, error)
}

type studentPortalService struct {
	students    repository.StudentRepository
	assignments repository.AssignmentRepository
	classes     repository.ClassRepository
	lessons     repository.LessonRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentPortalService constructs the student portal service.
func NewStudentPortalService(students repository.StudentRepository, assignments repository.AssignmentRepository, classes repository.ClassRepository, lessons repository.LessonRepository, logger zerolog.Logger) StudentPortalService {
	return &studentPortalService{
		students:    students,
		assignments: assignments,
		classes:     classes,
		lessons:     lessons,
		logger:      logger.With().Str("component", "student_portal_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentPortalService) Dashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	if err := ensureStudent(ctx, s.students, studentID); err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	now := s.now()
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{StudentID: &studentID, Sort: repository.SortDueDateAsc})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	from := now.UTC()
	upcoming, err := s.classes.List(ctx, repository.ClassFilter{StudentID: &studentID, From: &from, Sort: repository.SortScheduledAsc, Limit: portalPreviewSize})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	upcomingTotal, err := s.classes.Count(ctx, repository.ClassFilter{StudentID: &studentID, From: &from})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	stats := summarizeAssignments(assignments)
	stats.UpcomingClasses = int(upcomingTotal)

	recent := assignments
	if len(recent) > portalPreviewSize {
		recent = recent[:portalPreviewSize]
	}

	return dto.StudentDashboardResponse{
		Stats:             stats,
		RecentAssignments: dto.NewAssignmentResponses(recent, now),
		UpcomingClasses:   dto.NewClassResponses(upcoming),
	}, nil
}

func (s *studentPortalService) Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{StudentID: &studentID, Sort: repository.SortDueDateDesc})
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponses(assignments, s.now()), nil
}

func (s *studentPortalService) Classes(ctx context.Context, studentID uint) ([]dto.ClassResponse, error) {
	classes, err := s.classes.List(ctx, repository.ClassFilter{StudentID: &studentID, Sort: repository.SortScheduledDesc})
	if err != nil {
		return nil, err
	}
	return dto.NewClassResponses(classes), nil
}

// Lessons returns lessons whose level equals the student's level exactly.
func (s *studentPortalService) Lessons(ctx context.Context, studentID uint) ([]dto.LessonResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	lessons, err := s.lessons.ListByLevel(ctx, student.Level)
	if err != nil {
		return nil, err
	}
	return dto.NewLessonResponses(lessons), nil
}

// summarizeAssignments counts by status and averages the recorded grades.
// Ungraded assignments do not contribute to the average; with none graded it is 0.
func summarizeAssignments(assignments []models.Assignment) dto.StudentStats {
	stats := dto.StudentStats{TotalAssignments: len(assignments)}

	var gradeTotal float64
	var graded int
	for _, assignment := range assignments {
		switch assignment.Status {
		case models.AssignmentStatusPending:
			stats.PendingAssignments++
		case models.AssignmentStatusCompleted, models.AssignmentStatusGraded:
			stats.CompletedAssignments++
		}
		if assignment.IsGraded() {
			gradeTotal += *assignment.Grade
			graded++
		}
	}

	if graded > 0 {
		stats.AverageGrade = int(math.Round(gradeTotal / float64(graded)))
	}
	return stats
}
