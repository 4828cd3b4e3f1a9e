package admin

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/models"
	"sbook/settlement"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type SettleRequest struct {
	MatchID   string `json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

var retryAttempts = 3

func SetRetryAttempts(n int) { retryAttempts = n }

// Settle records the final score and runs the settlement engine over every
// pending bet touching the match. Redelivery is safe: already-settled bets
// are skipped, never re-posted.
func Settle(c *fiber.Ctx) error {
	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.MatchID == "" {
		return helpers.JSONError(c, "MATCH_ID_REQUIRED")
	}

	result := models.MatchResult{
		MatchID:   req.MatchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Status:    models.MatchFinished,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"home_score", "away_score", "status"}),
	}).Create(&result).Error; err != nil {
		return helpers.JSONDomainError(c, err)
	}

	engine := settlement.New(database.DB, retryAttempts)
	summary, err := engine.SettleMatch(req.MatchID)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Settlement complete", summary)
}
