package ledger

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATEs that mean "replay the whole transaction".
const (
	stateSerializationFailure = "40001"
	stateDeadlockDetected     = "40P01"
)

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == stateSerializationFailure || pgErr.Code == stateDeadlockDetected
	}
	return false
}

// WithRetry runs fn inside a database transaction, replaying it up to
// attempts times on serialization or deadlock failure before surfacing
// ErrConcurrencyConflict. Domain errors pass through untouched so the caller
// sees exactly one outcome per request.
func WithRetry(db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = db.Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		time.Sleep(time.Duration(i+1) * 10 * time.Millisecond)
	}
	return ErrConcurrencyConflict
}
