package bet

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/models"
	"sbook/settlement"

	"github.com/gofiber/fiber/v2"
)

func History(c *fiber.Ctx) error {
	owner := c.Locals("account").(models.Account)

	var bets []models.Bet
	if err := database.DB.Preload("Legs").
		Where("owner_account_id = ?", owner.ID).
		Order("created_at desc").
		Limit(200).
		Find(&bets).Error; err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", bets)
}

type VoidRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}

// Void cancels the caller's still-pending ticket and refunds the stake.
func Void(c *fiber.Ctx) error {
	owner := c.Locals("account").(models.Account)

	betID, err := c.ParamsInt("id")
	if err != nil || betID <= 0 {
		return helpers.JSONError(c, "INVALID_BET_ID")
	}

	var req VoidRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var b models.Bet
	if err := database.DB.First(&b, betID).Error; err != nil {
		return helpers.JSONError(c, "BET_NOT_FOUND")
	}
	if b.OwnerAccountID != owner.ID && !owner.IsAdmin() {
		return helpers.JSONError(c, "BET_NOT_FOUND")
	}

	engine := settlement.New(database.DB, retryAttempts)
	refund, err := engine.VoidBet(uint(betID), req.IdempotencyKey)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Bet voided", fiber.Map{
		"bet_id": betID,
		"refund": refund,
	})
}
