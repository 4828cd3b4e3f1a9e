package ledger

import "errors"

// Recoverable domain errors. Controllers translate these into stable string
// codes for the UI; everything else bubbles up as a storage failure.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountLocked       = errors.New("account locked")
	ErrInvalidHierarchy    = errors.New("invalid hierarchy")
	ErrInvalidLegCount     = errors.New("invalid leg count")
	ErrBetAlreadySettled   = errors.New("bet already settled")
	ErrMatchNotResolved    = errors.New("match not resolved")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidTransfer     = errors.New("invalid transfer")
)

var errorCodes = map[error]string{
	ErrInsufficientFunds:   "INSUFFICIENT_FUNDS",
	ErrAccountLocked:       "ACCOUNT_LOCKED",
	ErrInvalidHierarchy:    "INVALID_HIERARCHY",
	ErrInvalidLegCount:     "INVALID_LEG_COUNT",
	ErrBetAlreadySettled:   "BET_ALREADY_SETTLED",
	ErrMatchNotResolved:    "MATCH_NOT_RESOLVED",
	ErrConcurrencyConflict: "CONCURRENCY_CONFLICT",
	ErrAccountNotFound:     "ACCOUNT_NOT_FOUND",
	ErrInvalidTransfer:     "INVALID_TRANSFER",
}

// ErrorCode returns the wire code for a taxonomy error, or ok=false when the
// error is not part of the recoverable set.
func ErrorCode(err error) (string, bool) {
	for sentinel, code := range errorCodes {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return "", false
}
