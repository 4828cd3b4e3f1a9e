package agent

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ReportRow struct {
	AccountID  uint            `json:"account_id"`
	Username   string          `json:"username"`
	Turnover   decimal.Decimal `json:"turnover"`
	Payout     decimal.Decimal `json:"payout"`
	WinLoss    decimal.Decimal `json:"win_loss"`
	Commission decimal.Decimal `json:"commission"`
}

// WinLossReport aggregates settled bets per direct downline: turnover, payout,
// member win/loss and the caller's commission on that turnover.
func WinLossReport(c *fiber.Ctx) error {
	caller := c.Locals("account").(models.Account)

	// The date bound lives inside the join condition: filtering in WHERE
	// would turn the outer join inner and drop downlines with no bets in the
	// range from the report.
	join := "LEFT JOIN bets ON bets.owner_account_id = accounts.id AND bets.status = ? AND bets.deleted_at IS NULL"
	joinArgs := []any{models.BetSettled}
	if start := c.Query("start"); start != "" {
		if end := c.Query("end"); end != "" {
			join += " AND bets.created_at BETWEEN ? AND ?"
			joinArgs = append(joinArgs, start, end)
		}
	}

	var rows []ReportRow
	q := database.DB.Table("accounts").
		Select("accounts.id as account_id, accounts.username, "+
			"COALESCE(SUM(bets.stake), 0) as turnover, "+
			"COALESCE(SUM(bets.payout), 0) as payout, "+
			"COALESCE(SUM(bets.payout), 0) - COALESCE(SUM(bets.stake), 0) as win_loss, "+
			"COALESCE(SUM(bets.stake), 0) * ? / 100 as commission", caller.CommissionPercent).
		Joins(join, joinArgs...).
		Where("accounts.parent_id = ? AND accounts.deleted_at IS NULL", caller.ID)

	if err := q.Group("accounts.id").Scan(&rows).Error; err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"agent":  caller.Username,
		"report": rows,
	})
}
