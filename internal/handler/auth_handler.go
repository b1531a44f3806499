package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// AuthHandler exposes the credential exchange endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches login, refresh and logout routes. limiter guards the login routes and may be nil.
func (h *AuthHandler) Register(router fiber.Router, limiter fiber.Handler) {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	router.Post("/login", limiter, h.login)
	router.Post("/student/login", limiter, h.studentLogin)
	router.Post("/auth/refresh", h.refresh)
	router.Post("/auth/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return h.credentialError(c, err)
	}
	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) studentLogin(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.StudentLogin(c.UserContext(), payload)
	if err != nil {
		return h.credentialError(c, err)
	}
	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var payload dto.RefreshRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Refresh(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid refresh token")
		case isBadInput(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to refresh token")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to refresh token")
		}
	}
	return utils.SendSuccess(c, "token refreshed", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	var payload dto.RefreshRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Logout(c.UserContext(), payload); err != nil {
		if isBadInput(err) {
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to revoke token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log out")
	}
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) credentialError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	case isBadInput(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}
}
