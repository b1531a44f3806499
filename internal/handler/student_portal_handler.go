package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// StudentPortalHandler exposes a student's own data.
type StudentPortalHandler struct {
	service service.StudentPortalService
	logger  zerolog.Logger
}

// NewStudentPortalHandler constructs the handler.
func NewStudentPortalHandler(service service.StudentPortalService, logger zerolog.Logger) *StudentPortalHandler {
	return &StudentPortalHandler{
		service: service,
		logger:  logger.With().Str("component", "student_portal_handler").Logger(),
	}
}

// Register attaches portal routes. The group must already enforce the student role.
func (h *StudentPortalHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/assignments", h.assignments)
	router.Get("/classes", h.classes)
	router.Get("/lessons", h.lessons)
}

func (h *StudentPortalHandler) dashboard(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	response, err := h.service.Dashboard(c.UserContext(), studentID)
	if err != nil {
		return h.writeError(c, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", response)
}

func (h *StudentPortalHandler) assignments(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	assignments, err := h.service.Assignments(c.UserContext(), studentID)
	if err != nil {
		return h.writeError(c, err, "failed to list assignments")
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *StudentPortalHandler) classes(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	classes, err := h.service.Classes(c.UserContext(), studentID)
	if err != nil {
		return h.writeError(c, err, "failed to list classes")
	}
	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *StudentPortalHandler) lessons(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	lessons, err := h.service.Lessons(c.UserContext(), studentID)
	if err != nil {
		return h.writeError(c, err, "failed to list lessons")
	}
	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *StudentPortalHandler) writeError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrStudentNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	}
	requestLogger(h.logger, c).Error().Err(err).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
