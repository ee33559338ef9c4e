package middleware

import (
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const userKey = "user"

// AuthMiddleware resolves the bearer token to a stored user.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParseUserIDFromToken(c.Get(fiber.HeaderAuthorization), cfg.JWTSecret)
		if err != nil {
			return utils.Fail(c, err, "Not authorized")
		}

		var user models.User
		if err := db.WithContext(c.UserContext()).First(&user, userID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.Error(c, fiber.StatusUnauthorized, "User not found", nil)
			}
			return utils.Error(c, fiber.StatusInternalServerError, "Could not query database", err)
		}

		c.Locals(userKey, &user)
		return c.Next()
	}
}

// Authorize lets the request through only for the given roles.
func Authorize(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Error(c, fiber.StatusUnauthorized, "Not authorized", nil)
		}
		if !services.HasRole(user.Role, roles...) {
			return utils.Error(c, fiber.StatusForbidden,
				"User role "+string(user.Role)+" is not authorized to access this route", nil)
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
