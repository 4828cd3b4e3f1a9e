package ledger

import (
	"sbook/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReasonFundDownline  = "agent_fund_downline"
	ReasonReclaimUpline = "agent_reclaim_downline"
	ReasonManual        = "manual"
)

type TransferRequest struct {
	FromID         uint
	ToID           uint
	Amount         decimal.Decimal
	Reason         string
	IdempotencyKey string
	Note           string
}

// IsDescendant walks child's parent chain looking for ancestorID. The account
// tree is acyclic by construction (parents are fixed at creation), so the walk
// terminates at the root.
func IsDescendant(tx *gorm.DB, ancestorID uint, child *models.Account) (bool, error) {
	cur := child
	for cur.ParentID != nil {
		if *cur.ParentID == ancestorID {
			return true, nil
		}
		var parent models.Account
		if err := tx.First(&parent, *cur.ParentID).Error; err != nil {
			return false, err
		}
		cur = &parent
	}
	return false, nil
}

// Ancestors returns the parent chain of acct from direct parent up to the
// root, in walk order. Used by the settlement cascade and the hierarchy
// checks; this is the only place the tree is walked.
func Ancestors(tx *gorm.DB, acct *models.Account) ([]models.Account, error) {
	var chain []models.Account
	cur := acct
	for cur.ParentID != nil {
		var parent models.Account
		if err := tx.First(&parent, *cur.ParentID).Error; err != nil {
			return nil, err
		}
		chain = append(chain, parent)
		cur = &chain[len(chain)-1]
	}
	return chain, nil
}

// Transfer debits FromID and credits ToID atomically. Replaying the same
// idempotency key returns the two original entries without moving money
// again. The debit and credit legs share one RefID.
func Transfer(db *gorm.DB, attempts int, req TransferRequest) (*models.LedgerEntry, *models.LedgerEntry, error) {
	if !req.Amount.IsPositive() || req.FromID == req.ToID {
		return nil, nil, ErrInvalidTransfer
	}
	if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
		return nil, nil, ErrInvalidTransfer
	}

	var debit, credit *models.LedgerEntry
	err := WithRetry(db, attempts, func(tx *gorm.DB) error {
		// Replay check first: a committed transfer with this key wins.
		var prior []models.LedgerEntry
		if err := tx.Where("idempotency_key = ?", req.IdempotencyKey).
			Order("id asc").Find(&prior).Error; err != nil {
			return err
		}
		if len(prior) == 2 {
			debit, credit = &prior[0], &prior[1]
			return nil
		}

		accounts, err := LockAccounts(tx, []uint{req.FromID, req.ToID})
		if err != nil {
			return err
		}
		from, to := accounts[req.FromID], accounts[req.ToID]

		if from.IsLocked() || to.IsLocked() {
			return ErrAccountLocked
		}

		switch req.Reason {
		case ReasonFundDownline:
			if !from.IsAdmin() {
				ok, err := IsDescendant(tx, from.ID, to)
				if err != nil {
					return err
				}
				if !ok {
					return ErrInvalidHierarchy
				}
			}
		case ReasonReclaimUpline:
			if !to.IsAdmin() {
				ok, err := IsDescendant(tx, to.ID, from)
				if err != nil {
					return err
				}
				if !ok {
					return ErrInvalidHierarchy
				}
			}
		}

		refID := uuid.New().String()
		key := req.IdempotencyKey

		debit, err = Append(tx, from, Entry{
			Type:           models.EntryWithdraw,
			Amount:         req.Amount.Neg(),
			CounterpartyID: &to.ID,
			RefID:          refID,
			IdempotencyKey: &key,
			Note:           req.Note,
		})
		if err != nil {
			return err
		}

		credit, err = Append(tx, to, Entry{
			Type:           models.EntryDeposit,
			Amount:         req.Amount,
			CounterpartyID: &from.ID,
			RefID:          refID,
			IdempotencyKey: &key,
			Note:           req.Note,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return debit, credit, nil
}
