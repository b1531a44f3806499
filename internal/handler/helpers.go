package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if id, ok := c.Locals(middleware.LocalUserID).(uint); ok {
		return id
	}
	return 0
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// isBadInput reports errors caused by the request payload rather than the server.
func isBadInput(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors) || errors.Is(err, service.ErrInvalidDate)
}

func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, strings.ToLower(fieldErr.Field())+" is "+describeTag(fieldErr.Tag()))
	}
	return strings.Join(fields, "; ")
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "not a valid email"
	case "oneof":
		return "not an allowed value"
	default:
		return "invalid"
	}
}
