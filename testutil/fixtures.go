package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sbook/models"
)

// AccountParams configures CreateTestAccount; zero values get sensible
// defaults (active status, zero percents).
type AccountParams struct {
	Username   string
	Role       string
	ParentID   *uint
	Balance    string
	Share      string
	Commission string
	Status     string
}

// CreateTestAccount inserts one account row and returns it.
func CreateTestAccount(t *testing.T, db *gorm.DB, p AccountParams) *models.Account {
	t.Helper()

	acct := models.Account{
		Username:          p.Username,
		PasswordHash:      "x",
		Role:              p.Role,
		ParentID:          p.ParentID,
		Balance:           mustDecimal(t, p.Balance, "0"),
		SharePercent:      mustDecimal(t, p.Share, "0"),
		CommissionPercent: mustDecimal(t, p.Commission, "0"),
		Status:            p.Status,
	}
	if acct.Status == "" {
		acct.Status = models.StatusActive
	}
	if err := db.Create(&acct).Error; err != nil {
		t.Fatalf("create test account %s: %v", p.Username, err)
	}
	return &acct
}

// CreateTestBet inserts a pending single bet with one leg on matchID.
func CreateTestBet(t *testing.T, db *gorm.DB, ownerID uint, matchID, selection, stake string, line, price float64) *models.Bet {
	t.Helper()

	bet := models.Bet{
		OwnerAccountID: ownerID,
		Type:           models.BetSingle,
		Status:         models.BetPending,
		Stake:          mustDecimal(t, stake, "0"),
		Legs: []models.BetLeg{{
			MatchID:      matchID,
			Market:       models.MarketHandicap,
			Selection:    selection,
			HandicapLine: line,
			Price:        price,
			Result:       models.LegPending,
		}},
	}
	if err := db.Create(&bet).Error; err != nil {
		t.Fatalf("create test bet: %v", err)
	}
	return &bet
}

// CreateFinishedMatch records a final score so settlement will grade legs on
// matchID.
func CreateFinishedMatch(t *testing.T, db *gorm.DB, matchID string, home, away int) {
	t.Helper()

	res := models.MatchResult{
		MatchID:   matchID,
		HomeScore: home,
		AwayScore: away,
		Status:    models.MatchFinished,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("create match result %s: %v", matchID, err)
	}
}

func mustDecimal(t *testing.T, s, def string) decimal.Decimal {
	t.Helper()
	if s == "" {
		s = def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
