package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tutoring-api/internal/utils"
)

// RequireRole rejects requests whose principal role is not one of roles. It must run after
// JWTProtected; a request that reaches it without a role is treated as forbidden.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		if role = strings.ToLower(strings.TrimSpace(role)); role != "" {
			allowed[role] = true
		}
	}

	return func(c *fiber.Ctx) error {
		if !allowed[principalRole(c)] {
			return utils.SendError(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}

func principalRole(c *fiber.Ctx) string {
	if claims, ok := ClaimsFromContext(c); ok {
		return strings.ToLower(claims.Role)
	}
	role, _ := c.Locals(LocalUserRole).(string)
	return strings.ToLower(strings.TrimSpace(role))
}
