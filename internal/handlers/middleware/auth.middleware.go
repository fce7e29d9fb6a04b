package middleware

import (
	"context"
	"strings"

	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	PrincipalKey      AuthContextKey = "principal"
	PrincipalKeyFiber string         = "Principal" // Fiber context key (string)
)

// Authenticate resolves the session from a Bearer token. Requests without an
// Authorization header continue as guests; a malformed or rejected token is refused.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("Authenticate")

		principal := services.Principal{}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
				log.Info("invalid authorization header format")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid authorization header format",
				})
			}

			parsed, err := m.sessions.Parse(tokenParts[1])
			if err != nil {
				log.Info("token validation failed", "error", err.Error())
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			principal = parsed
		}

		c.Locals(PrincipalKeyFiber, principal)

		// Keep the trace ID set by the TraceID middleware
		ctx := context.WithValue(c.UserContext(), PrincipalKey, principal)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireAuth refuses guests.
func (m *Middleware) RequireAuth() fiber.Handler {
	log := m.log.Function("RequireAuth")

	return func(c *fiber.Ctx) error {
		if !GetPrincipal(c).Authenticated() {
			log.Info("principal not found in context", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		return c.Next()
	}
}

// GetPrincipal extracts the session from Fiber context. Guests get the zero Principal.
func GetPrincipal(c *fiber.Ctx) services.Principal {
	principal, ok := c.Locals(PrincipalKeyFiber).(services.Principal)
	if !ok {
		return services.Principal{}
	}
	return principal
}
