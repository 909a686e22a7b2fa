package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/openorigin/traceability/pkg/auth"
)

// AuthMiddleware validates bearer tokens at the edge and forwards the
// actor claims to the service as headers. Actor-scope enforcement stays
// with the service, which knows which actor a path belongs to.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("actor_id", claims.ActorID)
		c.Locals("role", claims.Role)

		c.Request().Header.Set("X-Actor-ID", claims.ActorID)
		c.Request().Header.Set("X-Actor-Role", claims.Role)

		return c.Next()
	}
}

// AdminMiddleware restricts a route to admin tokens
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}
