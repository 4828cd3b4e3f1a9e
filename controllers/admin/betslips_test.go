package admin

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbook/models"
	"sbook/testutil"
)

func TestBetslips_Filters(t *testing.T) {
	db := testutil.SetupTestDatabase(t)

	admin := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "root", Role: models.RoleAdmin,
	})
	alice := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "alice", Role: models.RoleUser, ParentID: &admin.ID, Balance: "500",
	})
	bob := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "bob", Role: models.RoleUser, ParentID: &admin.ID, Balance: "500",
	})

	aliceBet := testutil.CreateTestBet(t, db, alice.ID, "m-100", models.SideHome, "50", 0, -0.90)
	bobBet := testutil.CreateTestBet(t, db, bob.ID, "m-200", models.SideAway, "75", -0.5, 0.95)
	require.NoError(t, db.Model(&models.Bet{}).
		Where("id = ?", bobBet.ID).Update("status", models.BetSettled).Error)

	app := fiber.New()
	app.Get("/admin/betslips", Betslips)

	type envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Count    int          `json:"count"`
			Betslips []models.Bet `json:"betslips"`
		} `json:"data"`
	}

	fetch := func(t *testing.T, url string) envelope {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var env envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		require.True(t, env.Success)
		return env
	}

	t.Run("unfiltered returns every ticket with legs", func(t *testing.T) {
		env := fetch(t, "/admin/betslips")
		require.Equal(t, 2, env.Data.Count)
		for _, b := range env.Data.Betslips {
			assert.NotEmpty(t, b.Legs)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		env := fetch(t, "/admin/betslips?status=pending")
		require.Equal(t, 1, env.Data.Count)
		assert.Equal(t, aliceBet.ID, env.Data.Betslips[0].ID)
	})

	t.Run("username filter", func(t *testing.T) {
		env := fetch(t, "/admin/betslips?username=bob")
		require.Equal(t, 1, env.Data.Count)
		assert.Equal(t, bobBet.ID, env.Data.Betslips[0].ID)
	})

	t.Run("match filter", func(t *testing.T) {
		env := fetch(t, "/admin/betslips?match_id=m-100")
		require.Equal(t, 1, env.Data.Count)
		assert.Equal(t, aliceBet.ID, env.Data.Betslips[0].ID)
	})

	t.Run("no match means empty list", func(t *testing.T) {
		env := fetch(t, "/admin/betslips?match_id=m-999")
		assert.Equal(t, 0, env.Data.Count)
	})
}
