package odds

import (
	"testing"

	"sbook/ledger"
	"sbook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected string
	}{
		{"negative decimal form", -0.90, "0.9"},
		{"positive decimal form", 0.90, "0.9"},
		{"negative percent form", -90, "0.9"},
		{"positive percent form", 90, "0.9"},
		{"even money percent", 100, "1"},
		{"boundary stays raw", 2.0, "2"},
		{"just above boundary scales", 2.5, "0.025"},
		{"small price", 0.55, "0.55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.price)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"Normalize(%v) = %s, want %s", tt.price, got, tt.expected)
		})
	}
}

func TestLegMultiplierSignInsensitive(t *testing.T) {
	neg := LegMultiplier(-0.90)
	pos := LegMultiplier(0.90)
	assert.True(t, neg.Equal(pos), "favorite and underdog framing must price alike")
	assert.True(t, neg.Equal(decimal.RequireFromString("1.9")))
}

func TestPriceSingle(t *testing.T) {
	cp := NewCompositor(2, 12)

	mult, err := cp.Price(models.BetSingle, []models.BetLeg{{Price: -0.90}})
	require.NoError(t, err)
	assert.True(t, mult.Equal(decimal.RequireFromString("1.9")))

	stake := decimal.NewFromInt(100)
	assert.True(t, stake.Mul(mult).Equal(decimal.NewFromInt(190)))

	_, err = cp.Price(models.BetSingle, nil)
	assert.ErrorIs(t, err, ledger.ErrInvalidLegCount)

	_, err = cp.Price(models.BetSingle, []models.BetLeg{{Price: -0.90}, {Price: 0.85}})
	assert.ErrorIs(t, err, ledger.ErrInvalidLegCount)
}

func TestPriceParlay(t *testing.T) {
	cp := NewCompositor(2, 12)

	// 1.90 x 1.95 x 2.00 = 7.41
	legs := []models.BetLeg{{Price: -90}, {Price: 95}, {Price: 100}}
	mult, err := cp.Price(models.BetParlay, legs)
	require.NoError(t, err)
	assert.True(t, mult.Equal(decimal.RequireFromString("7.41")), "got %s", mult)

	stake := decimal.NewFromInt(100)
	assert.True(t, stake.Mul(mult).Equal(decimal.NewFromInt(741)))
}

func TestPriceParlayLegBounds(t *testing.T) {
	cp := NewCompositor(2, 3)

	_, err := cp.Price(models.BetParlay, []models.BetLeg{{Price: -90}})
	assert.ErrorIs(t, err, ledger.ErrInvalidLegCount)

	four := []models.BetLeg{{Price: -90}, {Price: -90}, {Price: -90}, {Price: -90}}
	_, err = cp.Price(models.BetParlay, four)
	assert.ErrorIs(t, err, ledger.ErrInvalidLegCount)

	_, err = cp.Price("exotic", []models.BetLeg{{Price: -90}, {Price: -90}})
	assert.ErrorIs(t, err, ledger.ErrInvalidLegCount)
}
