package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// LessonHandler wires lesson endpoints.
type LessonHandler struct {
	service service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler constructs the handler.
func NewLessonHandler(service service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches lesson routes to the router group.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *LessonHandler) list(c *fiber.Ctx) error {
	lessons, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list lessons")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list lessons")
	}
	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *LessonHandler) create(c *fiber.Ctx) error {
	var payload dto.LessonRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return h.writeError(c, err, "failed to create lesson")
	}
	return utils.SendCreated(c, "Lesson created successfully", dto.CreatedResponse{ID: id})
}

func (h *LessonHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.LessonRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(c.UserContext(), id, payload); err != nil {
		return h.writeError(c, err, "failed to update lesson")
	}
	return utils.SendSuccess(c, "Lesson updated successfully", dto.CreatedResponse{ID: id})
}

func (h *LessonHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err, "failed to delete lesson")
	}
	return utils.SendSuccess(c, "Lesson deleted successfully", dto.CreatedResponse{ID: id})
}

func (h *LessonHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
	case isBadInput(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
