package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/handler"
	"github.com/noah-isme/tutoring-api/internal/service"
)

type mockAssignmentService struct {
	created    dto.AssignmentCreateRequest
	updatedID  uint
	updated    dto.AssignmentUpdateRequest
	createErr  error
	updateErr  error
	deleteErr  error
	listResult []dto.AssignmentResponse
}

func (m *mockAssignmentService) List(context.Context) ([]dto.AssignmentResponse, error) {
	return m.listResult, nil
}

func (m *mockAssignmentService) Create(_ context.Context, payload dto.AssignmentCreateRequest) (uint, error) {
	m.created = payload
	if m.createErr != nil {
		return 0, m.createErr
	}
	return 42, nil
}

func (m *mockAssignmentService) Update(_ context.Context, id uint, payload dto.AssignmentUpdateRequest) error {
	m.updatedID = id
	m.updated = payload
	return m.updateErr
}

func (m *mockAssignmentService) Delete(context.Context, uint) error {
	return m.deleteErr
}

func newAssignmentApp(svc service.AssignmentService) *fiber.App {
	app := fiber.New()
	handler.NewAssignmentHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/assignments"))
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestAssignmentHandler_CreateReturnsID(t *testing.T) {
	svc := &mockAssignmentService{}
	app := newAssignmentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/assignments", `{"title":"Read chapter 1","student_id":3,"due_date":"2026-11-01"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                `json:"success"`
		Data    dto.CreatedResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, uint(42), body.Data.ID)
	require.Equal(t, "Assignment created successfully", body.Message)
	require.Equal(t, uint(3), svc.created.StudentID)
	require.Equal(t, "2026-11-01", svc.created.DueDate)
}

func TestAssignmentHandler_MissingStudentIs404(t *testing.T) {
	app := newAssignmentApp(&mockAssignmentService{createErr: service.ErrStudentNotFound})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/assignments", `{"title":"x","student_id":99}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignmentHandler_ValidationErrorIs400(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validationErr := validate.Struct(dto.AssignmentUpdateRequest{Status: "archived"})
	require.Error(t, validationErr)

	app := newAssignmentApp(&mockAssignmentService{updateErr: validationErr})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/assignments/5", `{"status":"archived"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.Contains(t, body.Message, "status is not an allowed value")
}

func TestAssignmentHandler_UpdatePassesGrade(t *testing.T) {
	svc := &mockAssignmentService{}
	app := newAssignmentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/assignments/5", `{"status":"completed","grade":87.5,"feedback":"Good"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(5), svc.updatedID)
	require.NotNil(t, svc.updated.Grade)
	require.Equal(t, 87.5, *svc.updated.Grade)
}

func TestAssignmentHandler_InvalidIdentifier(t *testing.T) {
	app := newAssignmentApp(&mockAssignmentService{})

	for _, target := range []string{"/api/assignments/abc", "/api/assignments/0"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestAssignmentHandler_DeleteUnknownIs404(t *testing.T) {
	app := newAssignmentApp(&mockAssignmentService{deleteErr: service.ErrAssignmentNotFound})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/assignments/8", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignmentHandler_UnexpectedErrorIs500(t *testing.T) {
	app := newAssignmentApp(&mockAssignmentService{deleteErr: errors.New("disk on fire")})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/assignments/8", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "failed to delete assignment", body.Message)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
