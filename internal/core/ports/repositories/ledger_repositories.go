package repositories

import (
	"context"
	"time"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the atomic unit handed to the transaction coordinator. Every
// write made through it commits entirely or not at all; no partial effect is
// ever visible to other callers.
type LedgerTx interface {
	// Account returns the locked snapshot of an account that was named when
	// the unit was opened. The snapshot reflects the latest committed state;
	// no other writer can touch the row until this unit terminates.
	Account(accountID string) (domain.Account, bool)

	// UpdateBalance persists a new balance for one of the locked accounts.
	// The caller must have validated the account's invariant already; this
	// method re-validates defensively and fails with
	// apperrors.ErrInvariantViolation instead of clamping.
	UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, callerID string, now time.Time) error

	// AppendOperation appends an immutable ledger entry, assigning its
	// monotonic ID and timestamp. It never rejects on business grounds;
	// validation happens upstream.
	AppendOperation(ctx context.Context, op *domain.Operation) error
}

// LedgerRepository opens atomic units over a fixed set of accounts.
type LedgerRepository interface {
	// WithAccounts locks the named accounts in ascending account-ID order
	// (regardless of the order given, so opposed transfers over the same pair
	// cannot deadlock), runs fn, and commits if fn returns nil. Any error from
	// fn rolls the unit back untouched. A missing account aborts the unit with
	// apperrors.ErrNotFound naming the absent ID.
	WithAccounts(ctx context.Context, accountIDs []string, fn func(tx LedgerTx) error) error
}
