package services

import (
	"context"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/dto"
)

// TransactionSvcFacade is the transaction coordinator boundary: the only
// path through which balances change. Each method is a single-shot atomic
// unit that terminates as committed (results returned) or aborted (a named
// error, no state change). Nothing is retried internally.
type TransactionSvcFacade interface {
	// Credit deposits req.Amount onto the account and appends one CREDIT
	// operation.
	Credit(ctx context.Context, accountID string, req dto.CreditRequest, callerID string) (*domain.Operation, error)

	// Debit withdraws req.Amount from the account and appends one DEBIT
	// operation. Fails with apperrors.ErrInsufficientBalance when the result
	// would breach the account's balance floor.
	Debit(ctx context.Context, accountID string, req dto.DebitRequest, callerID string) (*domain.Operation, error)

	// Transfer debits the source and credits the destination as one atomic
	// unit, appending exactly two correlated operations (debit leg first).
	Transfer(ctx context.Context, req dto.TransferRequest, callerID string) ([]domain.Operation, error)
}
