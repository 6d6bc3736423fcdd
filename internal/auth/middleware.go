package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Role names expected in token claims.
const (
	RoleAdmin   = "ADMIN"
	RoleSystem  = "SYSTEM"
	RoleSupport = "SUPPORT"
)

const claimsLocalKey = "authClaims"

// RequireRoles validates the bearer token and rejects requests whose claims
// carry none of the listed roles: 401 without a valid token, 403 without a
// qualifying role.
func RequireRoles(tokens *TokenService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if len(roles) > 0 && !claims.HasAnyRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}

		c.Locals(claimsLocalKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext returns the validated claims stored by RequireRoles.
func ClaimsFromContext(c *fiber.Ctx) (Claims, bool) {
	claims, ok := c.Locals(claimsLocalKey).(Claims)
	return claims, ok
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", ErrInvalidToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}
