package agent

import (
	"sbook/database"
	"sbook/helpers"
	"sbook/ledger"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromID         uint            `json:"from_id"`
	ToID           uint            `json:"to_id"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      string          `json:"direction"` // deposit (default) or withdraw
	IdempotencyKey string          `json:"idempotency_key"`
	Note           string          `json:"note"`
}

var retryAttempts = 3

// SetRetryAttempts wires the configured transaction retry bound in at boot.
func SetRetryAttempts(n int) { retryAttempts = n }

// Transfer moves credit between the caller and a downline. Deposits flow
// caller -> child, withdraws pull child -> caller; either way both legs land
// or neither does, and a replayed idempotency key is a no-op.
func Transfer(c *fiber.Ctx) error {
	caller := c.Locals("account").(models.Account)

	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.IdempotencyKey == "" {
		return helpers.JSONError(c, "IDEMPOTENCY_KEY_REQUIRED")
	}

	engineReq := ledger.TransferRequest{
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		Note:           req.Note,
	}
	switch req.Direction {
	case "withdraw":
		engineReq.FromID = req.ToID
		engineReq.ToID = caller.ID
		engineReq.Reason = ledger.ReasonReclaimUpline
	default:
		engineReq.FromID = caller.ID
		engineReq.ToID = req.ToID
		engineReq.Reason = ledger.ReasonFundDownline
	}
	// Admins may transfer on behalf of another account.
	if caller.IsAdmin() && req.FromID != 0 {
		engineReq.FromID = req.FromID
	}

	debit, credit, err := ledger.Transfer(database.DB, retryAttempts, engineReq)
	if err != nil {
		return helpers.JSONDomainError(c, err)
	}

	return helpers.JSONSuccess(c, "Transfer applied", fiber.Map{
		"debit":  debit,
		"credit": credit,
	})
}
