package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryDeposit         = "deposit"
	EntryWithdraw        = "withdraw"
	EntryBetStake        = "bet_stake"
	EntryBetPayout       = "bet_payout"
	EntryAgentShare      = "agent_share"
	EntryAgentCommission = "agent_commission"
	EntryManualAdjust    = "manual_adjust"
)

// LedgerEntry is append-only: rows are created inside the same transaction
// that moves the balance and are never updated or deleted afterwards. The sum
// of Amount over an account's entries reconstructs its balance.
type LedgerEntry struct {
	gorm.Model

	AccountID      uint            `gorm:"index;index:idx_idem_account,unique" json:"account_id"`
	CounterpartyID *uint           `gorm:"index" json:"counterparty_id"`
	Type           string          `gorm:"size:24;index" json:"type"`
	Amount         decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	BalanceAfter   decimal.Decimal `gorm:"type:numeric(18,2)" json:"balance_after"`
	RelatedBetID   *uint           `gorm:"index" json:"related_bet_id"`
	RefID          string          `gorm:"size:64;index" json:"ref_id"`

	// IdempotencyKey groups the two legs of a transfer (or a void refund) so a
	// replayed request can return the original rows instead of re-applying.
	IdempotencyKey *string `gorm:"size:64;index:idx_idem_account,unique" json:"idempotency_key,omitempty"`
	Note           string  `gorm:"size:255" json:"note"`
}
