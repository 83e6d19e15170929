package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/accumanage/portal/pkg/util"
)

const claimsKey = "auth_claims"

// RouteGuard re-validates the session inside API handlers. It does not rely
// on the edge guard having run.
type RouteGuard struct {
	decoder Decoder
	logger  *zap.Logger
}

// NewRouteGuard constructs the guard.
func NewRouteGuard(decoder Decoder, logger *zap.Logger) *RouteGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteGuard{decoder: decoder, logger: logger}
}

// Require rejects requests without a valid session (401) or whose role is not
// in required (403).
func (g *RouteGuard) Require(required RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(TokenCookie)
		if token == "" {
			return apperrors.NewUnauthorized("authentication required")
		}

		claims, err := g.decoder.Decode(token)
		if err != nil {
			g.logger.Debug("session rejected", zap.String("path", c.Path()), zap.Error(err))
			return apperrors.NewUnauthorized("authentication required")
		}

		if !HasRole(claims, required) {
			return apperrors.NewForbidden("insufficient role")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the claims stored by RouteGuard.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
