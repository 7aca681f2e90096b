package repositories

import (
	"context"

	"github.com/digibank/backend/internal/core/domain"
)

// OperationRepository defines the read side of the operation ledger. Writes
// happen exclusively through a LedgerTx so that an operation is never visible
// without its balance update.
type OperationRepository interface {
	// FindOperationsByAccountID returns one page of an account's operations,
	// newest first (created_at descending, ties broken by operation ID
	// descending), along with the total number of operations for the account.
	// page is 0-indexed; an out-of-range page yields an empty slice and the
	// correct total.
	FindOperationsByAccountID(ctx context.Context, accountID string, page int, pageSize int) ([]domain.Operation, int64, error)
}
