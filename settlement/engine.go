package settlement

import (
	"encoding/json"
	"errors"
	"time"

	"sbook/ledger"
	"sbook/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// errNotReady marks a ticket that still has pending legs on other matches; it
// is skipped, not failed.
var errNotReady = errors.New("ticket has unresolved legs")

type Engine struct {
	db       *gorm.DB
	attempts int
}

func New(db *gorm.DB, attempts int) *Engine {
	return &Engine{db: db, attempts: attempts}
}

type Summary struct {
	LegsResolved int `json:"legs_resolved"`
	Settled      int `json:"settled"`
	Failed       int `json:"failed"`
}

// SettleMatch grades every pending leg on the match, then finalizes each
// ticket whose outcome is decided. Every ticket settles in its own
// transaction so one failing cascade never blocks the rest.
func (e *Engine) SettleMatch(matchID string) (Summary, error) {
	var sum Summary

	var res models.MatchResult
	err := e.db.Where("match_id = ?", matchID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sum, ledger.ErrMatchNotResolved
	}
	if err != nil {
		return sum, err
	}
	if !res.Finished() {
		return sum, ledger.ErrMatchNotResolved
	}

	var legs []models.BetLeg
	if err := e.db.Where("match_id = ? AND result = ?", matchID, models.LegPending).
		Find(&legs).Error; err != nil {
		return sum, err
	}

	for i := range legs {
		leg := &legs[i]
		outcome := ResolveLeg(leg, res.HomeScore, res.AwayScore)

		// Conditional update so a concurrent sweep grading the same leg wins
		// exactly once.
		upd := e.db.Model(&models.BetLeg{}).
			Where("id = ? AND result = ?", leg.ID, models.LegPending).
			Update("result", outcome)
		if upd.Error != nil {
			return sum, upd.Error
		}
		if upd.RowsAffected > 0 {
			sum.LegsResolved++
		}
	}

	// Candidates are every still-pending bet touching the match, not just the
	// bets whose legs were graded in this pass: a bet whose cascade failed
	// earlier has fully graded legs and must be picked up again here.
	var betIDs []uint
	if err := e.db.Model(&models.Bet{}).
		Distinct("bets.id").
		Joins("JOIN bet_legs ON bet_legs.bet_id = bets.id AND bet_legs.deleted_at IS NULL").
		Where("bet_legs.match_id = ? AND bets.status = ?", matchID, models.BetPending).
		Pluck("bets.id", &betIDs).Error; err != nil {
		return sum, err
	}

	for _, betID := range betIDs {
		switch err := e.SettleBet(betID); {
		case err == nil:
			sum.Settled++
		case errors.Is(err, errNotReady), errors.Is(err, ledger.ErrBetAlreadySettled):
			// other-match legs outstanding, or already handled
		default:
			sum.Failed++
			log.WithFields(log.Fields{"bet_id": betID, "match_id": matchID}).
				WithError(err).Warn("settlement cascade failed, bet stays pending")
		}
	}

	return sum, nil
}

// SettleBet finalizes one ticket: race-safe pending->settled flip, payout
// credit, and the share/commission cascade up the owner's upline, all in one
// transaction. Any failure rolls the whole ticket back to pending.
func (e *Engine) SettleBet(betID uint) error {
	return ledger.WithRetry(e.db, e.attempts, func(tx *gorm.DB) error {
		var bet models.Bet
		if err := tx.Preload("Legs").First(&bet, betID).Error; err != nil {
			return err
		}
		if bet.Status != models.BetPending {
			return ledger.ErrBetAlreadySettled
		}
		if !HasLoss(bet.Legs) && !AllResolved(bet.Legs) {
			return errNotReady
		}

		multiplier := TicketMultiplier(bet.Legs)
		payout := bet.Stake.Mul(multiplier).Round(2)

		var owner models.Account
		if err := tx.First(&owner, bet.OwnerAccountID).Error; err != nil {
			return err
		}
		ancestors, err := ledger.Ancestors(tx, &owner)
		if err != nil {
			return err
		}

		ids := make([]uint, 0, len(ancestors)+1)
		ids = append(ids, owner.ID)
		for i := range ancestors {
			ids = append(ids, ancestors[i].ID)
		}
		locked, err := ledger.LockAccounts(tx, ids)
		if err != nil {
			return err
		}
		for _, acct := range locked {
			if acct.IsLocked() {
				return ledger.ErrAccountLocked
			}
		}

		info, _ := json.Marshal(map[string]any{
			"effective_multiplier": multiplier,
			"settled_at":           time.Now().Format(time.RFC3339),
		})
		flip := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Updates(map[string]any{
				"status":      models.BetSettled,
				"payout":      payout,
				"result_info": info,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return ledger.ErrBetAlreadySettled
		}

		refID := uuid.New().String()
		if payout.IsPositive() {
			if _, err := ledger.Append(tx, locked[owner.ID], ledger.Entry{
				Type:         models.EntryBetPayout,
				Amount:       payout,
				RelatedBetID: &bet.ID,
				RefID:        refID,
			}); err != nil {
				return err
			}
		}

		// Cascade percentages come from the locked rows; the walk order comes
		// from the parent chain.
		chain := make([]models.Account, len(ancestors))
		for i := range ancestors {
			chain[i] = *locked[ancestors[i].ID]
		}
		for _, planned := range PlanCascade(chain, bet.Stake, payout) {
			if _, err := ledger.Append(tx, locked[planned.AccountID], ledger.Entry{
				Type:           planned.Type,
				Amount:         planned.Amount,
				CounterpartyID: &owner.ID,
				RelatedBetID:   &bet.ID,
				RefID:          refID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// VoidBet cancels a still-pending ticket and refunds the stake. Replaying the
// same idempotency key returns the original refund entry.
func (e *Engine) VoidBet(betID uint, idempotencyKey string) (*models.LedgerEntry, error) {
	if _, err := uuid.Parse(idempotencyKey); err != nil {
		return nil, ledger.ErrInvalidTransfer
	}

	var refund *models.LedgerEntry
	err := ledger.WithRetry(e.db, e.attempts, func(tx *gorm.DB) error {
		var prior models.LedgerEntry
		err := tx.Where("idempotency_key = ?", idempotencyKey).First(&prior).Error
		if err == nil {
			refund = &prior
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var bet models.Bet
		if err := tx.First(&bet, betID).Error; err != nil {
			return err
		}
		if bet.Status != models.BetPending {
			return ledger.ErrBetAlreadySettled
		}

		owner, err := ledger.LockAccount(tx, bet.OwnerAccountID)
		if err != nil {
			return err
		}

		flip := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Update("status", models.BetVoided)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return ledger.ErrBetAlreadySettled
		}

		key := idempotencyKey
		refund, err = ledger.Append(tx, owner, ledger.Entry{
			Type:           models.EntryBetPayout,
			Amount:         bet.Stake,
			RelatedBetID:   &bet.ID,
			RefID:          uuid.New().String(),
			IdempotencyKey: &key,
			Note:           "void refund",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}
