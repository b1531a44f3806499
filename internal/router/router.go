package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/config"
	"github.com/noah-isme/tutoring-api/internal/handler"
	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Tokens               middleware.TokenParser
	HealthProbe          func(context.Context) error
	AuthHandler          *handler.AuthHandler
	StudentHandler       *handler.StudentHandler
	LessonHandler        *handler.LessonHandler
	AssignmentHandler    *handler.AssignmentHandler
	ClassHandler         *handler.ClassHandler
	ResourceHandler      *handler.ResourceHandler
	DashboardHandler     *handler.DashboardHandler
	StudentPortalHandler *handler.StudentPortalHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())
	if cfg.StorageDriver == "local" && cfg.UploadsDir != "" {
		app.Static(cfg.UploadsPublicPath, cfg.UploadsDir)
	}

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbe))

	// Public auth routes go first: the /student group below would otherwise guard /student/login.
	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api, middleware.RateLimit("login", cfg.LoginRateLimit, time.Minute))
	}

	jwt := middleware.JWTProtected(deps.Tokens)
	teacherOnly := middleware.RequireRole(auth.RoleTeacher)
	studentOnly := middleware.RequireRole(auth.RoleStudent)

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", jwt, teacherOnly))
	}
	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api.Group("/lessons", jwt, teacherOnly))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments", jwt, teacherOnly))
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api.Group("/classes", jwt, teacherOnly))
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.Register(api.Group("/resources", jwt, teacherOnly))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwt, teacherOnly))
	}

	if deps.StudentPortalHandler != nil {
		deps.StudentPortalHandler.Register(api.Group("/student", jwt, studentOnly))
	}
}
