package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BetSingle = "single"
	BetParlay = "parlay"
)

const (
	BetPending = "pending"
	BetSettled = "settled"
	BetVoided  = "voided"
)

const (
	MarketHandicap  = "handicap"
	MarketOverUnder = "over_under"
)

const (
	SideHome  = "home"
	SideAway  = "away"
	SideOver  = "over"
	SideUnder = "under"
)

const (
	LegPending  = "pending"
	LegWin      = "win"
	LegLose     = "lose"
	LegPush     = "push"
	LegHalfWin  = "half_win"
	LegHalfLose = "half_lose"
)

type Bet struct {
	gorm.Model

	OwnerAccountID uint            `gorm:"index" json:"owner_account_id"`
	Type           string          `gorm:"size:8" json:"type"`
	Status         string          `gorm:"size:8;index" json:"status"`
	Stake          decimal.Decimal `gorm:"type:numeric(18,2)" json:"stake"`

	// TotalMultiplier is the advisory price at placement; the authoritative
	// payout is recomputed leg by leg at settlement.
	TotalMultiplier decimal.Decimal `gorm:"type:numeric(12,4)" json:"total_multiplier"`
	PotentialPayout decimal.Decimal `gorm:"type:numeric(18,2)" json:"potential_payout"`
	Payout          decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"payout"`

	Legs []BetLeg `gorm:"foreignKey:BetID;constraint:OnDelete:CASCADE" json:"legs"`

	ResultInfo datatypes.JSON `gorm:"type:jsonb" json:"result_info,omitempty"`
}

type BetLeg struct {
	gorm.Model

	BetID   uint   `gorm:"index" json:"bet_id"`
	MatchID string `gorm:"size:64;index" json:"match_id"`
	Market  string `gorm:"size:16" json:"market"`

	// Selection is home/away for handicap, over/under for totals.
	Selection    string  `gorm:"size:8" json:"selection"`
	HandicapLine float64 `gorm:"type:numeric(6,2)" json:"handicap_line"`

	// Price in the signed Hong-Kong/Malay convention the slips use: -0.90,
	// +0.90, or the percent-scaled -90 / +90 form.
	Price  float64 `gorm:"type:numeric(8,2)" json:"price"`
	Result string  `gorm:"size:12;default:pending;index" json:"result"`
}
