package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
		{ErrAccountLocked, "ACCOUNT_LOCKED"},
		{ErrInvalidHierarchy, "INVALID_HIERARCHY"},
		{ErrInvalidLegCount, "INVALID_LEG_COUNT"},
		{ErrBetAlreadySettled, "BET_ALREADY_SETTLED"},
		{ErrMatchNotResolved, "MATCH_NOT_RESOLVED"},
		{ErrConcurrencyConflict, "CONCURRENCY_CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			code, ok := ErrorCode(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.code, code)

			// Wrapped errors still map.
			code, ok = ErrorCode(fmt.Errorf("transfer: %w", tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}

	_, ok := ErrorCode(fmt.Errorf("connection refused"))
	assert.False(t, ok, "storage failures are not part of the recoverable taxonomy")
}
