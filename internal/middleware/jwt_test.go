package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/middleware"
)

func protectedApp(tokens *auth.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTProtected(tokens), func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{
			"user_id": c.Locals(middleware.LocalUserID),
			"role":    c.Locals(middleware.LocalUserRole),
			"email":   claims.Email,
		})
	})
	return app
}

func perform(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTProtectedMissingTokenIsUnauthenticated(t *testing.T) {
	app := protectedApp(auth.NewTokenManager("secret", "refresh", time.Hour, time.Hour))

	require.Equal(t, fiber.StatusUnauthorized, perform(t, app, "").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, perform(t, app, "Bearer").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, perform(t, app, "Basic dXNlcjpwYXNz").StatusCode)
}

func TestJWTProtectedInvalidTokenIsForbidden(t *testing.T) {
	app := protectedApp(auth.NewTokenManager("secret", "refresh", time.Hour, time.Hour))

	require.Equal(t, fiber.StatusForbidden, perform(t, app, "Bearer not-a-token").StatusCode)

	other := auth.NewTokenManager("other-secret", "refresh", time.Hour, time.Hour)
	foreign, _, err := other.IssueAccess(auth.Identity{Role: auth.RoleTeacher, ID: 1, Email: "t@example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, perform(t, app, "Bearer "+foreign).StatusCode)
}

func TestJWTProtectedAttachesClaims(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "refresh", time.Hour, time.Hour)
	app := protectedApp(tokens)

	token, _, err := tokens.IssueAccess(auth.Identity{Role: auth.RoleStudent, ID: 12, Email: "s@example.com"})
	require.NoError(t, err)

	resp := perform(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, uint(12), payload.UserID)
	require.Equal(t, "student", payload.Role)
	require.Equal(t, "s@example.com", payload.Email)
}
