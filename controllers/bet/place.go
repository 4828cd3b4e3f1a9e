package bet

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/ledger"
	"sbook/models"
	"sbook/odds"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LegRequest struct {
	MatchID      string  `json:"match_id"`
	Market       string  `json:"market"`
	Selection    string  `json:"selection"`
	HandicapLine float64 `json:"handicap_line"`
	Price        float64 `json:"price"`
}

type PlaceRequest struct {
	Type  string          `json:"type"`
	Stake decimal.Decimal `json:"stake"`
	Legs  []LegRequest    `json:"legs"`
}

var (
	compositor    = odds.NewCompositor(2, 12)
	retryAttempts = 3
)

// Configure wires the parlay bounds and retry budget in at boot.
func Configure(minLegs, maxLegs, attempts int) {
	compositor = odds.NewCompositor(minLegs, maxLegs)
	retryAttempts = attempts
}

func validMarket(m string) bool {
	return m == models.MarketHandicap || m == models.MarketOverUnder
}

// validSelection pairs the side with its market. Anything else would reach
// settlement ungradable, so it is rejected here.
func validSelection(market, selection string) bool {
	switch market {
	case models.MarketHandicap:
		return selection == models.SideHome || selection == models.SideAway
	case models.MarketOverUnder:
		return selection == models.SideOver || selection == models.SideUnder
	}
	return false
}

// Place prices the ticket, reserves the stake and records the bet with its
// legs, all inside one transaction: a priced ticket is never visible without
// its stake debit.
func Place(c *fiber.Ctx) error {
	owner := c.Locals("account").(models.Account)

	var req PlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if !req.Stake.IsPositive() {
		return helpers.JSONError(c, "STAKE_MUST_BE_POSITIVE")
	}
	if req.Type == "" {
		if len(req.Legs) > 1 {
			req.Type = models.BetParlay
		} else {
			req.Type = models.BetSingle
		}
	}

	legs := make([]models.BetLeg, 0, len(req.Legs))
	for _, l := range req.Legs {
		if l.MatchID == "" || !validMarket(l.Market) || !validSelection(l.Market, l.Selection) {
			return helpers.JSONError(c, "INVALID_LEG")
		}
		legs = append(legs, models.BetLeg{
			MatchID:      l.MatchID,
			Market:       l.Market,
			Selection:    l.Selection,
			HandicapLine: l.HandicapLine,
			Price:        l.Price,
			Result:       models.LegPending,
		})
	}

	multiplier, err := compositor.Price(req.Type, legs)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}
	potential := req.Stake.Mul(multiplier).Round(2)

	var created models.Bet
	err = ledger.WithRetry(database.DB, retryAttempts, func(tx *gorm.DB) error {
		acct, err := ledger.LockAccount(tx, owner.ID)
		if err != nil {
			return err
		}
		if acct.IsLocked() {
			return ledger.ErrAccountLocked
		}

		created = models.Bet{
			OwnerAccountID:  acct.ID,
			Type:            req.Type,
			Status:          models.BetPending,
			Stake:           req.Stake,
			TotalMultiplier: multiplier,
			PotentialPayout: potential,
			Legs:            legs,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		_, err = ledger.Append(tx, acct, ledger.Entry{
			Type:         models.EntryBetStake,
			Amount:       req.Stake.Neg(),
			RelatedBetID: &created.ID,
			RefID:        uuid.New().String(),
		})
		return err
	})
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Bet placed", fiber.Map{
		"bet_id":           created.ID,
		"multiplier":       multiplier,
		"potential_payout": potential,
	})
}
