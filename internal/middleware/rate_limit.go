package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/tutoring-api/internal/observability"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// RateLimit throttles a route family per client IP. Callers are anonymous on the login
// routes it guards, so the address is the only stable key.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return identifier + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			observability.LoginAttempts().WithLabelValues(identifier, "throttled").Inc()
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
		},
	})
}
