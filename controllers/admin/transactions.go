package admin

import (
	"time"

	"sbook/database"
	"sbook/helpers"
	"sbook/ledger"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transactions returns the ledger projection for any account, admin-scoped.
func Transactions(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return helpers.JSONError(c, "INVALID_ACCOUNT_ID")
	}

	var from, to *time.Time
	if s := c.Query("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			from = &t
		}
	}
	if s := c.Query("end"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			to = &t
		}
	}

	entries, err := ledger.Statement(database.DB, uint(accountID), from, to)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"account_id": accountID,
		"entries":    entries,
	})
}

type AdjustRequest struct {
	AccountID uint            `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"` // signed
	Note      string          `json:"note"`
}

// Adjust posts a manual_adjust entry against an account. Negative amounts are
// debits and honor the non-negative balance invariant.
func Adjust(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.AccountID == 0 || req.Amount.IsZero() {
		return helpers.JSONError(c, "ACCOUNT_AND_AMOUNT_REQUIRED")
	}

	var entry *models.LedgerEntry
	err := ledger.WithRetry(database.DB, retryAttempts, func(tx *gorm.DB) error {
		acct, err := ledger.LockAccount(tx, req.AccountID)
		if err != nil {
			return err
		}
		entry, err = ledger.Append(tx, acct, ledger.Entry{
			Type:   models.EntryManualAdjust,
			Amount: req.Amount,
			RefID:  uuid.New().String(),
			Note:   req.Note,
		})
		return err
	})
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Adjustment applied", entry)
}

// LockAccount soft-locks an account instead of deleting it; ledger history
// stays intact and settlement refuses cascades through it.
func LockAccount(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return helpers.JSONError(c, "INVALID_ACCOUNT_ID")
	}

	res := database.DB.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("status", models.StatusLocked)
	if res.Error != nil {
		return helpers.JSONDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "ACCOUNT_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "Account locked", fiber.Map{"account_id": accountID})
}

// UnlockAccount reverses a soft lock.
func UnlockAccount(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return helpers.JSONError(c, "INVALID_ACCOUNT_ID")
	}

	res := database.DB.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("status", models.StatusActive)
	if res.Error != nil {
		return helpers.JSONDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "ACCOUNT_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "Account unlocked", fiber.Map{"account_id": accountID})
}
