package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbook/models"
	"sbook/testutil"
)

func TestTransfer_Postings(t *testing.T) {
	db := testutil.SetupTestDatabase(t)

	admin := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "root", Role: models.RoleAdmin, Balance: "1000",
	})
	master := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "master1", Role: models.RoleMaster, ParentID: &admin.ID,
	})

	key := uuid.New().String()
	req := TransferRequest{
		FromID:         admin.ID,
		ToID:           master.ID,
		Amount:         decimal.RequireFromString("250"),
		Reason:         ReasonFundDownline,
		IdempotencyKey: key,
		Note:           "opening credit",
	}

	debit, credit, err := Transfer(db, 3, req)
	require.NoError(t, err)

	t.Run("legs mirror each other", func(t *testing.T) {
		assert.True(t, debit.Amount.Equal(decimal.RequireFromString("-250")))
		assert.True(t, credit.Amount.Equal(decimal.RequireFromString("250")))
		assert.Equal(t, debit.RefID, credit.RefID)
		assert.Equal(t, models.EntryWithdraw, debit.Type)
		assert.Equal(t, models.EntryDeposit, credit.Type)
	})

	t.Run("total credit is conserved", func(t *testing.T) {
		fromBal, err := Balance(db, admin.ID)
		require.NoError(t, err)
		toBal, err := Balance(db, master.ID)
		require.NoError(t, err)

		assert.True(t, fromBal.Equal(decimal.RequireFromString("750")))
		assert.True(t, toBal.Equal(decimal.RequireFromString("250")))
		assert.True(t, fromBal.Add(toBal).Equal(decimal.RequireFromString("1000")))

		assert.True(t, debit.BalanceAfter.Equal(fromBal))
		assert.True(t, credit.BalanceAfter.Equal(toBal))
	})

	t.Run("replaying the key moves no money", func(t *testing.T) {
		debit2, credit2, err := Transfer(db, 3, req)
		require.NoError(t, err)

		assert.Equal(t, debit.ID, debit2.ID)
		assert.Equal(t, credit.ID, credit2.ID)

		fromBal, err := Balance(db, admin.ID)
		require.NoError(t, err)
		assert.True(t, fromBal.Equal(decimal.RequireFromString("750")))

		var count int64
		require.NoError(t, db.Model(&models.LedgerEntry{}).
			Where("idempotency_key = ?", key).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}

func TestTransfer_Rejections(t *testing.T) {
	db := testutil.SetupTestDatabase(t)

	admin := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "root", Role: models.RoleAdmin, Balance: "1000",
	})
	masterA := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "master_a", Role: models.RoleMaster, ParentID: &admin.ID, Balance: "100",
	})
	masterB := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "master_b", Role: models.RoleMaster, ParentID: &admin.ID, Balance: "100",
	})
	userA := testutil.CreateTestAccount(t, db, testutil.AccountParams{
		Username: "user_a", Role: models.RoleUser, ParentID: &masterA.ID, Balance: "50",
	})

	transfer := func(from, to uint, amount, reason string) error {
		_, _, err := Transfer(db, 3, TransferRequest{
			FromID:         from,
			ToID:           to,
			Amount:         decimal.RequireFromString(amount),
			Reason:         reason,
			IdempotencyKey: uuid.New().String(),
		})
		return err
	}

	t.Run("sibling is not a downline", func(t *testing.T) {
		err := transfer(masterA.ID, masterB.ID, "10", ReasonFundDownline)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

	t.Run("reclaim only runs upward", func(t *testing.T) {
		err := transfer(userA.ID, masterB.ID, "10", ReasonReclaimUpline)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

	t.Run("non-admin cannot overdraw", func(t *testing.T) {
		err := transfer(masterA.ID, userA.ID, "500", ReasonFundDownline)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		bal, berr := Balance(db, masterA.ID)
		require.NoError(t, berr)
		assert.True(t, bal.Equal(decimal.RequireFromString("100")))
	})

	t.Run("locked counterparty refuses", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Account{}).
			Where("id = ?", masterB.ID).Update("status", models.StatusLocked).Error)

		err := transfer(admin.ID, masterB.ID, "10", ReasonFundDownline)
		assert.ErrorIs(t, err, ErrAccountLocked)
	})
}
