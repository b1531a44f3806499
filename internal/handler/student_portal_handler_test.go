package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/handler"
	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/service"
)

type mockPortalService struct {
	seenID uint
	err    error
}

func (m *mockPortalService) Dashboard(_ context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	m.seenID = studentID
	if m.err != nil {
		return dto.StudentDashboardResponse{}, m.err
	}
	return dto.StudentDashboardResponse{Stats: dto.StudentStats{TotalAssignments: 2, AverageGrade: 90}}, nil
}

func (m *mockPortalService) Assignments(_ context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	m.seenID = studentID
	return []dto.AssignmentResponse{}, m.err
}

func (m *mockPortalService) Classes(_ context.Context, studentID uint) ([]dto.ClassResponse, error) {
	m.seenID = studentID
	return []dto.ClassResponse{}, m.err
}

func (m *mockPortalService) Lessons(_ context.Context, studentID uint) ([]dto.LessonResponse, error) {
	m.seenID = studentID
	return []dto.LessonResponse{}, m.err
}

func newPortalApp(svc *mockPortalService, studentID uint) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/student", func(c *fiber.Ctx) error {
		if studentID != 0 {
			c.Locals(middleware.LocalUserID, studentID)
		}
		return c.Next()
	})
	handler.NewStudentPortalHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestStudentPortalHandler_UsesTokenSubject(t *testing.T) {
	svc := &mockPortalService{}
	app := newPortalApp(svc, 17)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(17), svc.seenID)

	var body struct {
		Data dto.StudentDashboardResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, 2, body.Data.Stats.TotalAssignments)
}

func TestStudentPortalHandler_RequiresSubject(t *testing.T) {
	app := newPortalApp(&mockPortalService{}, 0)

	for _, path := range []string{"/dashboard", "/assignments", "/classes", "/lessons"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student"+path, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestStudentPortalHandler_DeletedStudentIs404(t *testing.T) {
	app := newPortalApp(&mockPortalService{err: service.ErrStudentNotFound}, 3)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/lessons", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
