package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/utils"
)

// Locals keys populated by JWTProtected.
const (
	LocalClaims   = "claims"
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	ParseAccess(token string) (*auth.Claims, error)
}

// JWTProtected returns a middleware that validates bearer access tokens.
// A request without a bearer token is unauthenticated (401); a token that fails
// verification is forbidden (403).
func JWTProtected(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		claims, err := tokens.ParseAccess(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalUserID, claims.SubjectID())
		c.Locals(LocalUserRole, claims.Role)

		return c.Next()
	}
}

// ClaimsFromContext returns the verified claims attached by JWTProtected.
func ClaimsFromContext(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}
