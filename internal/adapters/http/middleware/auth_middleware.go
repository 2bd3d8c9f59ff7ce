package middleware

import (
	"strings"

	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/core/domain"
	"montsion-scolarite/internal/pkg/jwt"
	"montsion-scolarite/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the session-token cookie
const SessionCookie = "session_token"

const identityKey = "identity"

// AuthMiddleware validates the session and attaches the caller's identity
// to the request. The token is read from the session cookie first, then
// from the Authorization header.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)

		if token == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token == "" {
			return response.Unauthorized(c, "Non autorisé")
		}

		claims, err := jwt.ValidateSessionToken(token, cfg.Session.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Session expirée, veuillez vous reconnecter")
			}
			return response.Unauthorized(c, "Session invalide")
		}

		c.Locals(identityKey, domain.Identity{
			Username: claims.Username,
			Role:     domain.Role(claims.Role),
		})

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity.IsZero() {
			return response.Unauthorized(c, "Non autorisé")
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Accès réservé à l'administration")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// CurrentIdentity returns the authenticated identity attached to the
// request, or the zero Identity if the caller is anonymous.
func CurrentIdentity(c *fiber.Ctx) domain.Identity {
	if identity, ok := c.Locals(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.Identity{}
}
