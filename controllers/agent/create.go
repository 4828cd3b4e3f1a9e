package agent

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type CreateDownlineRequest struct {
	Username          string          `json:"username"`
	Password          string          `json:"password"`
	Role              string          `json:"role"`
	SharePercent      decimal.Decimal `json:"share_percent"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

var hundred = decimal.NewFromInt(100)

// CreateDownline creates a direct child of the calling account. Role rank is
// enforced (admin > master > agent > user) and a child's share/commission can
// never exceed its creator's.
func CreateDownline(c *fiber.Ctx) error {
	creator := c.Locals("account").(models.Account)

	var req CreateDownlineRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Username == "" || req.Password == "" {
		return helpers.JSONError(c, "USERNAME_AND_PASSWORD_REQUIRED")
	}
	if !creator.CanCreate(req.Role) {
		return helpers.JSONError(c, "INVALID_HIERARCHY")
	}
	if req.SharePercent.IsNegative() || req.SharePercent.GreaterThan(hundred) ||
		req.CommissionPercent.IsNegative() || req.CommissionPercent.GreaterThan(hundred) {
		return helpers.JSONError(c, "INVALID_PERCENT")
	}
	if !creator.IsAdmin() {
		if req.SharePercent.GreaterThan(creator.SharePercent) {
			return helpers.JSONError(c, "SHARE_EXCEEDS_UPLINE")
		}
		if req.CommissionPercent.GreaterThan(creator.CommissionPercent) {
			return helpers.JSONError(c, "COMMISSION_EXCEEDS_UPLINE")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	parentID := creator.ID
	acct := models.Account{
		Username:          req.Username,
		PasswordHash:      string(hashed),
		Role:              req.Role,
		ParentID:          &parentID,
		Balance:           decimal.Zero,
		SharePercent:      req.SharePercent,
		CommissionPercent: req.CommissionPercent,
		Status:            models.StatusActive,
	}
	if err := database.DB.Create(&acct).Error; err != nil {
		return helpers.JSONError(c, "USERNAME_TAKEN")
	}

	return helpers.JSONSuccess(c, "Downline created", fiber.Map{
		"id":       acct.ID,
		"username": acct.Username,
		"role":     acct.Role,
	})
}
