package admin

import (
	"time"

	"sbook/database"
	"sbook/helpers"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
)

// Betslips lists tickets across all accounts, newest first, with optional
// status, username, match and date filters.
func Betslips(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 200)
	if limit <= 0 || limit > 1000 {
		limit = 200
	}

	q := database.DB.Model(&models.Bet{}).
		Preload("Legs").
		Order("bets.created_at desc").
		Limit(limit)

	if status := c.Query("status"); status != "" {
		q = q.Where("bets.status = ?", status)
	}
	if username := c.Query("username"); username != "" {
		q = q.Joins("JOIN accounts ON accounts.id = bets.owner_account_id").
			Where("accounts.username LIKE ?", "%"+username+"%")
	}
	if matchID := c.Query("match_id"); matchID != "" {
		q = q.Joins("JOIN bet_legs ON bet_legs.bet_id = bets.id AND bet_legs.deleted_at IS NULL").
			Where("bet_legs.match_id = ?", matchID).
			Distinct("bets.*")
	}
	if s := c.Query("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q = q.Where("bets.created_at >= ?", t)
		}
	}
	if s := c.Query("end"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q = q.Where("bets.created_at <= ?", t)
		}
	}

	var bets []models.Bet
	if err := q.Find(&bets).Error; err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"count":    len(bets),
		"betslips": bets,
	})
}
