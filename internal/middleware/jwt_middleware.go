package middleware

import (
	"strings"

	"selling/internal/logger"
	"selling/internal/models"
	"selling/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userKey = "user"

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// authenticated user is stored in the context, see CurrentUser.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
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

		user, err := authService.UserFromToken(c.UserContext(), parts[1])
		if err != nil {
			logger.Log.Debug("JWT validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(userKey, user)
		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)

		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
