package settlement

import (
	"sbook/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PlannedEntry is one share/commission posting the cascade will write for an
// ancestor of the ticket owner.
type PlannedEntry struct {
	AccountID uint
	Type      string
	Amount    decimal.Decimal
}

// PlanCascade computes the agent_share and agent_commission postings for a
// settled ticket, walking the owner's upline from direct parent to the root.
// Share moves against the member's net result: an ancestor with 20% share is
// debited 200 when the member nets +1000 and credited 200 when the member
// nets -1000. Commission is earned on turnover regardless of outcome. The
// root claims whatever share percentage the walked ancestors left unclaimed.
// Zero-amount postings are dropped.
func PlanCascade(ancestors []models.Account, stake, payout decimal.Decimal) []PlannedEntry {
	net := payout.Sub(stake)
	claimed := decimal.Zero

	var plan []PlannedEntry
	for i := range ancestors {
		anc := &ancestors[i]

		sharePct := anc.SharePercent
		if anc.ParentID == nil {
			sharePct = hundred.Sub(claimed)
		}
		claimed = claimed.Add(sharePct)

		share := net.Neg().Mul(sharePct).Div(hundred).Round(2)
		if !share.IsZero() {
			plan = append(plan, PlannedEntry{
				AccountID: anc.ID,
				Type:      models.EntryAgentShare,
				Amount:    share,
			})
		}

		commission := stake.Mul(anc.CommissionPercent).Div(hundred).Round(2)
		if !commission.IsZero() {
			plan = append(plan, PlannedEntry{
				AccountID: anc.ID,
				Type:      models.EntryAgentCommission,
				Amount:    commission,
			})
		}
	}
	return plan
}
