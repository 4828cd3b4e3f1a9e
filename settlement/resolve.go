// Package settlement grades bet legs against final scores and distributes the
// outcome of each ticket across the owning agent chain.
package settlement

import (
	"sbook/models"
	"sbook/odds"

	"github.com/shopspring/decimal"
)

var (
	one  = decimal.NewFromInt(1)
	half = decimal.NewFromFloat(0.5)
)

// ResolveLeg grades one leg against the final score. Lines are quoted at
// quarter-goal granularity, so the margin-minus-line difference lands exactly
// on quarter steps and the comparisons below are exact.
func ResolveLeg(leg *models.BetLeg, homeScore, awayScore int) string {
	var diff float64

	switch leg.Market {
	case models.MarketOverUnder:
		total := float64(homeScore + awayScore)
		if leg.Selection == models.SideUnder {
			diff = leg.HandicapLine - total
		} else {
			diff = total - leg.HandicapLine
		}
	default: // handicap
		margin := float64(homeScore - awayScore)
		if leg.Selection == models.SideAway {
			margin = -margin
		}
		diff = margin - leg.HandicapLine
	}

	switch {
	case diff >= 0.5:
		return models.LegWin
	case diff == 0.25:
		return models.LegHalfWin
	case diff == 0:
		return models.LegPush
	case diff == -0.25:
		return models.LegHalfLose
	default:
		return models.LegLose
	}
}

// EffectiveFactor converts a graded leg into its contribution to the ticket
// multiplier: a push returns stake (x1), half outcomes average the push and
// the full result, a loss zeroes the ticket.
func EffectiveFactor(leg *models.BetLeg) decimal.Decimal {
	switch leg.Result {
	case models.LegWin:
		return odds.LegMultiplier(leg.Price)
	case models.LegHalfWin:
		return one.Add(odds.Normalize(leg.Price).Div(decimal.NewFromInt(2)))
	case models.LegPush:
		return one
	case models.LegHalfLose:
		return half
	default:
		return decimal.Zero
	}
}

// TicketMultiplier folds graded legs into the final payout multiplier. Any
// losing leg voids the whole ticket; each other leg contributes its effective
// factor independently.
func TicketMultiplier(legs []models.BetLeg) decimal.Decimal {
	total := one
	for i := range legs {
		if legs[i].Result == models.LegLose {
			return decimal.Zero
		}
		total = total.Mul(EffectiveFactor(&legs[i]))
	}
	return total
}

// AllResolved reports whether every leg has a terminal result.
func AllResolved(legs []models.BetLeg) bool {
	for i := range legs {
		if legs[i].Result == models.LegPending {
			return false
		}
	}
	return true
}

// HasLoss reports whether any leg already lost; a lost leg finalizes a parlay
// without waiting for its remaining matches.
func HasLoss(legs []models.BetLeg) bool {
	for i := range legs {
		if legs[i].Result == models.LegLose {
			return true
		}
	}
	return false
}
