package account

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Username == "" || req.Password == "" {
		return helpers.JSONError(c, "USERNAME_AND_PASSWORD_REQUIRED")
	}

	var acct models.Account
	if err := database.DB.Where("username = ?", req.Username).First(&acct).Error; err != nil {
		return helpers.JSONError(c, "INVALID_CREDENTIALS")
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		return helpers.JSONError(c, "INVALID_CREDENTIALS")
	}
	if acct.IsLocked() {
		return helpers.JSONError(c, "ACCOUNT_LOCKED")
	}

	session := models.Session{
		Token:     uuid.New().String(),
		AccountID: acct.ID,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"token":    session.Token,
		"username": acct.Username,
		"role":     acct.Role,
		"balance":  acct.Balance,
	})
}
