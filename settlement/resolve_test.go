package settlement

import (
	"testing"

	"sbook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func hdpLeg(selection string, line float64) *models.BetLeg {
	return &models.BetLeg{Market: models.MarketHandicap, Selection: selection, HandicapLine: line}
}

func ouLeg(selection string, line float64) *models.BetLeg {
	return &models.BetLeg{Market: models.MarketOverUnder, Selection: selection, HandicapLine: line}
}

func TestResolveLegHandicap(t *testing.T) {
	tests := []struct {
		name       string
		leg        *models.BetLeg
		home, away int
		expected   string
	}{
		{"favorite covers half line", hdpLeg(models.SideHome, 0.5), 2, 0, models.LegWin},
		{"favorite misses half line", hdpLeg(models.SideHome, 0.5), 0, 0, models.LegLose},
		{"flat line push", hdpLeg(models.SideHome, 0), 1, 1, models.LegPush},
		{"flat line win", hdpLeg(models.SideHome, 0), 2, 1, models.LegWin},
		{"quarter line half win", hdpLeg(models.SideHome, 0.75), 1, 0, models.LegHalfWin},
		{"quarter line half lose", hdpLeg(models.SideHome, 0.25), 0, 0, models.LegHalfLose},
		{"quarter line full win", hdpLeg(models.SideHome, 0.25), 2, 0, models.LegWin},
		{"away pick flips margin", hdpLeg(models.SideAway, 0.5), 0, 2, models.LegWin},
		{"away pick losing", hdpLeg(models.SideAway, 0.5), 2, 0, models.LegLose},
		{"underdog receiving goals", hdpLeg(models.SideAway, -0.5), 1, 0, models.LegLose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLeg(tt.leg, tt.home, tt.away))
		})
	}
}

func TestResolveLegOverUnder(t *testing.T) {
	tests := []struct {
		name       string
		leg        *models.BetLeg
		home, away int
		expected   string
	}{
		{"over clears line", ouLeg(models.SideOver, 2.5), 2, 1, models.LegWin},
		{"over misses line", ouLeg(models.SideOver, 2.5), 1, 1, models.LegLose},
		{"flat total push", ouLeg(models.SideOver, 2), 1, 1, models.LegPush},
		{"over quarter half win", ouLeg(models.SideOver, 2.75), 2, 1, models.LegHalfWin},
		{"over quarter half lose", ouLeg(models.SideOver, 2.25), 1, 1, models.LegHalfLose},
		{"under wins low total", ouLeg(models.SideUnder, 2.5), 1, 0, models.LegWin},
		{"under quarter half lose", ouLeg(models.SideUnder, 1.75), 1, 1, models.LegHalfLose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLeg(tt.leg, tt.home, tt.away))
		})
	}
}

func TestEffectiveFactor(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		price    float64
		expected string
	}{
		{"win pays full multiplier", models.LegWin, -90, "1.9"},
		{"half win averages push and win", models.LegHalfWin, -90, "1.45"},
		{"push returns stake", models.LegPush, -90, "1"},
		{"half lose returns half stake", models.LegHalfLose, -90, "0.5"},
		{"lose pays nothing", models.LegLose, -90, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := &models.BetLeg{Price: tt.price, Result: tt.result}
			got := EffectiveFactor(leg)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"EffectiveFactor(%s) = %s, want %s", tt.result, got, tt.expected)
		})
	}
}

func TestTicketMultiplier(t *testing.T) {
	t.Run("one losing leg voids the ticket", func(t *testing.T) {
		legs := []models.BetLeg{
			{Price: -90, Result: models.LegWin},
			{Price: -95, Result: models.LegLose},
			{Price: 100, Result: models.LegWin},
		}
		assert.True(t, TicketMultiplier(legs).IsZero())
	})

	t.Run("push leg drops out of the product", func(t *testing.T) {
		legs := []models.BetLeg{
			{Price: -90, Result: models.LegWin},
			{Price: -95, Result: models.LegPush},
		}
		got := TicketMultiplier(legs)
		assert.True(t, got.Equal(decimal.RequireFromString("1.9")), "got %s", got)
	})

	t.Run("all winners multiply out", func(t *testing.T) {
		legs := []models.BetLeg{
			{Price: -90, Result: models.LegWin},
			{Price: 95, Result: models.LegWin},
			{Price: 100, Result: models.LegWin},
		}
		got := TicketMultiplier(legs)
		assert.True(t, got.Equal(decimal.RequireFromString("7.41")), "got %s", got)
	})

	t.Run("half outcomes fold independently", func(t *testing.T) {
		legs := []models.BetLeg{
			{Price: -90, Result: models.LegHalfWin},
			{Price: -90, Result: models.LegHalfLose},
		}
		// 1.45 x 0.5
		got := TicketMultiplier(legs)
		assert.True(t, got.Equal(decimal.RequireFromString("0.725")), "got %s", got)
	})
}

func TestReadinessHelpers(t *testing.T) {
	pendingMix := []models.BetLeg{
		{Result: models.LegWin},
		{Result: models.LegPending},
	}
	assert.False(t, AllResolved(pendingMix))
	assert.False(t, HasLoss(pendingMix))

	lostEarly := []models.BetLeg{
		{Result: models.LegLose},
		{Result: models.LegPending},
	}
	assert.True(t, HasLoss(lostEarly), "a lost leg decides the ticket before other matches finish")

	done := []models.BetLeg{{Result: models.LegWin}, {Result: models.LegPush}}
	assert.True(t, AllResolved(done))
}
