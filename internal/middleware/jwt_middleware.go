package middleware

import (
	"log"
	"strings"

	"til/internal/models"
	"til/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the fiber.Ctx locals key under which AuthRequired
// stores the authenticated identity.
const UserContextKey = "user"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// On success the authenticated identity is stored in the request
// locals for handlers to read via AuthenticatedUser.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, identity)
		return c.Next()
	}
}

// AuthenticatedUser returns the identity stored by AuthRequired, or nil
// if the request did not pass through the middleware.
func AuthenticatedUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserContextKey).(*models.User)
	return user
}
