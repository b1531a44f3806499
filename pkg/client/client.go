// Package client is a typed HTTP client for the tutoring API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/tutoring-api/internal/dto"
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tutoring api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tutoring api: status %d: %s", e.StatusCode, e.Message)
}

// Client calls the REST surface under /api.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL, e.g. "http://localhost:3001". A nil httpClient gets a
// traced transport and a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    httpClient,
	}
}

// SetToken replaces the bearer token sent with each request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Login exchanges teacher credentials and stores the access token.
func (c *Client) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	return c.login(ctx, "/login", email, password)
}

// StudentLogin exchanges student credentials and stores the access token.
func (c *Client) StudentLogin(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	return c.login(ctx, "/student/login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, path, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return dto.LoginResponse{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// Refresh rotates the refresh token and stores the new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", dto.RefreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return dto.LoginResponse{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) StudentDashboard(ctx context.Context) (dto.StudentDashboardResponse, error) {
	var out dto.StudentDashboardResponse
	err := c.doJSON(ctx, http.MethodGet, "/student/dashboard", nil, &out)
	return out, err
}

func (c *Client) StudentAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	var out []dto.AssignmentResponse
	err := c.doJSON(ctx, http.MethodGet, "/student/assignments", nil, &out)
	return out, err
}

func (c *Client) StudentClasses(ctx context.Context) ([]dto.ClassResponse, error) {
	var out []dto.ClassResponse
	err := c.doJSON(ctx, http.MethodGet, "/student/classes", nil, &out)
	return out, err
}

func (c *Client) StudentLessons(ctx context.Context) ([]dto.LessonResponse, error) {
	var out []dto.LessonResponse
	err := c.doJSON(ctx, http.MethodGet, "/student/lessons", nil, &out)
	return out, err
}

func (c *Client) Students(ctx context.Context) ([]dto.StudentResponse, error) {
	var out []dto.StudentResponse
	err := c.doJSON(ctx, http.MethodGet, "/students", nil, &out)
	return out, err
}

// CreateStudent returns the new student's id.
func (c *Client) CreateStudent(ctx context.Context, payload dto.StudentRequest) (uint, error) {
	return c.create(ctx, "/students", payload)
}

// UpdateStudent replaces every editable field of the student.
func (c *Client) UpdateStudent(ctx context.Context, id uint, payload dto.StudentRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/students/"+idPath(id), payload, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, "/students/"+idPath(id), nil, nil)
}

func (c *Client) Lessons(ctx context.Context) ([]dto.LessonResponse, error) {
	var out []dto.LessonResponse
	err := c.doJSON(ctx, http.MethodGet, "/lessons", nil, &out)
	return out, err
}

func (c *Client) CreateLesson(ctx context.Context, payload dto.LessonRequest) (uint, error) {
	return c.create(ctx, "/lessons", payload)
}

func (c *Client) Assignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	var out []dto.AssignmentResponse
	err := c.doJSON(ctx, http.MethodGet, "/assignments", nil, &out)
	return out, err
}

func (c *Client) CreateAssignment(ctx context.Context, payload dto.AssignmentCreateRequest) (uint, error) {
	return c.create(ctx, "/assignments", payload)
}

// UpdateAssignment sets status, grade and feedback.
func (c *Client) UpdateAssignment(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/assignments/"+idPath(id), payload, nil)
}

func (c *Client) Classes(ctx context.Context) ([]dto.ClassResponse, error) {
	var out []dto.ClassResponse
	err := c.doJSON(ctx, http.MethodGet, "/classes", nil, &out)
	return out, err
}

func (c *Client) CreateClass(ctx context.Context, payload dto.ClassRequest) (uint, error) {
	return c.create(ctx, "/classes", payload)
}

func (c *Client) Resources(ctx context.Context) ([]dto.ResourceResponse, error) {
	var out []dto.ResourceResponse
	err := c.doJSON(ctx, http.MethodGet, "/resources", nil, &out)
	return out, err
}

// CreateResource uploads a resource. file may be nil for a metadata-only resource.
func (c *Client) CreateResource(ctx context.Context, payload dto.ResourceCreateRequest, filename string, file io.Reader) (uint, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"title":       payload.Title,
		"type":        payload.Type,
		"description": payload.Description,
		"level":       payload.Level,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return 0, err
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return 0, err
		}
		if _, err := io.Copy(part, file); err != nil {
			return 0, err
		}
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	var out dto.CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/resources", body, writer.FormDataContentType(), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) DashboardStats(ctx context.Context) (dto.DashboardStats, error) {
	var out dto.DashboardStats
	err := c.doJSON(ctx, http.MethodGet, "/dashboard/stats", nil, &out)
	return out, err
}

func (c *Client) create(ctx context.Context, path string, payload interface{}) (uint, error) {
	var out dto.CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	if payload == nil {
		return c.do(ctx, method, path, nil, "", out)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(raw), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		// Non-JSON error pages still surface as StatusError below.
		_ = json.Unmarshal(raw, &payload)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := payload.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil || len(payload.Data) == 0 || string(payload.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
