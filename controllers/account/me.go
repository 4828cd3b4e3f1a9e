package account

import (
	"time"

	"sbook/database"
	"sbook/helpers"
	"sbook/ledger"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
)

func Me(c *fiber.Ctx) error {
	acct := c.Locals("account").(models.Account)

	// Re-read so /me always reflects the ledger, not the session snapshot.
	balance, err := ledger.Balance(database.DB, acct.ID)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"id":                 acct.ID,
		"username":           acct.Username,
		"role":               acct.Role,
		"balance":            balance,
		"share_percent":      acct.SharePercent,
		"commission_percent": acct.CommissionPercent,
		"status":             acct.Status,
	})
}

func parseRange(c *fiber.Ctx) (*time.Time, *time.Time) {
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
	return from, to
}

func Statement(c *fiber.Ctx) error {
	acct := c.Locals("account").(models.Account)

	from, to := parseRange(c)
	entries, err := ledger.Statement(database.DB, acct.ID, from, to)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"account_id": acct.ID,
		"entries":    entries,
	})
}
