package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// ResourceHandler wires teaching resource endpoints.
type ResourceHandler struct {
	service service.ResourceService
	logger  zerolog.Logger
}

// NewResourceHandler constructs the handler.
func NewResourceHandler(service service.ResourceService, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		logger:  logger.With().Str("component", "resource_handler").Logger(),
	}
}

// Register attaches resource routes to the router group.
func (h *ResourceHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *ResourceHandler) list(c *fiber.Ctx) error {
	resources, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list resources")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list resources")
	}
	return utils.SendSuccess(c, "resources retrieved", resources)
}

// create accepts multipart form fields plus an optional "file" part.
func (h *ResourceHandler) create(c *fiber.Ctx) error {
	var payload dto.ResourceCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	id, err := h.service.Create(c.UserContext(), payload, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case isBadInput(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create resource")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create resource")
		}
	}
	return utils.SendCreated(c, "Resource created successfully", dto.CreatedResponse{ID: id})
}

func (h *ResourceHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "resource not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete resource")
	}
	return utils.SendSuccess(c, "Resource deleted successfully", dto.CreatedResponse{ID: id})
}
