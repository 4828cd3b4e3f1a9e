package ledger

import (
	"errors"
	"sort"
	"time"

	"sbook/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the write request for one ledger row. Amount is signed: debits are
// negative, credits positive.
type Entry struct {
	Type           string
	Amount         decimal.Decimal
	CounterpartyID *uint
	RelatedBetID   *uint
	RefID          string
	IdempotencyKey *string
	Note           string
}

// LockAccount loads one account row FOR UPDATE inside tx.
func LockAccount(tx *gorm.DB, id uint) (*models.Account, error) {
	var acct models.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&acct, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// LockAccounts locks a set of account rows in ascending id order so that
// concurrent multi-account operations (transfers, settlement cascades sharing
// ancestors) cannot deadlock against each other.
func LockAccounts(tx *gorm.DB, ids []uint) (map[uint]*models.Account, error) {
	uniq := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	out := make(map[uint]*models.Account, len(uniq))
	for _, id := range uniq {
		acct, err := LockAccount(tx, id)
		if err != nil {
			return nil, err
		}
		out[id] = acct
	}
	return out, nil
}

// Append posts one entry against an account row the caller already holds a
// row lock on, moving the cached balance in the same transaction. Fails with
// ErrInsufficientFunds when a debit would drive the balance negative. Entries
// are never touched again after this write.
func Append(tx *gorm.DB, acct *models.Account, e Entry) (*models.LedgerEntry, error) {
	newBalance := acct.Balance.Add(e.Amount)
	// The root admin is the house book and may run negative; every other
	// account holds the non-negative invariant at debit time.
	if e.Amount.IsNegative() && newBalance.IsNegative() && !acct.IsAdmin() {
		return nil, ErrInsufficientFunds
	}

	if err := tx.Model(acct).Update("balance", newBalance).Error; err != nil {
		return nil, err
	}
	acct.Balance = newBalance

	row := models.LedgerEntry{
		AccountID:      acct.ID,
		CounterpartyID: e.CounterpartyID,
		Type:           e.Type,
		Amount:         e.Amount,
		BalanceAfter:   newBalance,
		RelatedBetID:   e.RelatedBetID,
		RefID:          e.RefID,
		IdempotencyKey: e.IdempotencyKey,
		Note:           e.Note,
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Balance reads the current balance without locking.
func Balance(db *gorm.DB, accountID uint) (decimal.Decimal, error) {
	var acct models.Account
	if err := db.First(&acct, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

// Statement is a read-only projection over the entry log for one account,
// newest first, optionally bounded by a time range.
func Statement(db *gorm.DB, accountID uint, from, to *time.Time) ([]models.LedgerEntry, error) {
	q := db.Where("account_id = ?", accountID)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var entries []models.LedgerEntry
	if err := q.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
