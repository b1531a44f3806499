package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tutoring-api/internal/config"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck reports liveness plus the result of probe, which may be nil.
// A failing probe turns the response into a 503.
func HealthCheck(cfg config.Config, probe func(context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response := HealthResponse{
			Status:      "ok",
			Database:    "unchecked",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if probe != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := probe(ctx); err != nil {
				response.Status = "degraded"
				response.Database = "unreachable"
				return utils.SendSuccessWithStatus(c, fiber.StatusServiceUnavailable, "service degraded", response)
			}
			response.Database = "ok"
		}

		return utils.SendSuccess(c, "service healthy", response)
	}
}
