package middlewares

import (
	"strings"

	"sbook/database"
	"sbook/helpers"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
)

func sessionToken(c *fiber.Ctx) string {
	if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Get("X-Session-Token")
}

// RequireAuth resolves the caller's session token into an active account and
// stores it in Locals("account").
func RequireAuth(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "SESSION_TOKEN_REQUIRED",
		})
	}

	var session models.Session
	if err := database.DB.Preload("Account").
		Where("token = ?", token).First(&session).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "INVALID_SESSION",
		})
	}

	if session.Account.IsLocked() {
		return helpers.JSONError(c, "ACCOUNT_LOCKED")
	}

	c.Locals("account", session.Account)
	return c.Next()
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct, ok := c.Locals("account").(models.Account)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_SESSION",
			})
		}
		for _, role := range roles {
			if acct.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "FORBIDDEN",
		})
	}
}
