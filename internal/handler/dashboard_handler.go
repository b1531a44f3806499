package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// DashboardHandler serves the teacher overview.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard routes to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
}

func (h *DashboardHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", stats)
}
