package services

import (
	"context"
	"fmt"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService is the transaction coordinator: the only code path that
// changes account balances. Every public method runs as one atomic unit over
// the ledger repository and terminates exactly once, as committed or aborted.
type TransactionService struct {
	ledgerRepo portsrepo.LedgerRepository
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(ledgerRepo portsrepo.LedgerRepository) *TransactionService {
	return &TransactionService{ledgerRepo: ledgerRepo}
}

// Credit deposits amount onto the account and appends one CREDIT operation.
func (s *TransactionService) Credit(ctx context.Context, accountID string, req dto.CreditRequest, callerID string) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}

	var op *domain.Operation
	err := s.ledgerRepo.WithAccounts(ctx, []string{accountID}, func(tx portsrepo.LedgerTx) error {
		acc, ok := tx.Account(accountID)
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if err := requireOperable(acc); err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := acc.Balance.Add(req.Amount)
		if err := tx.UpdateBalance(ctx, accountID, newBalance, callerID, now); err != nil {
			return err
		}

		op = &domain.Operation{
			AccountID:   accountID,
			Amount:      req.Amount,
			Kind:        domain.Credit,
			Description: req.Description,
			CreatedAt:   now,
			CreatedBy:   callerID,
		}
		return tx.AppendOperation(ctx, op)
	})
	if err != nil {
		logger.Error("credit failed", "accountID", accountID, "error", err)
		return nil, err
	}

	logger.Info("credit committed", "accountID", accountID, "operationID", op.OperationID, "amount", req.Amount)
	return op, nil
}

// Debit withdraws amount from the account and appends one DEBIT operation.
// The balance floor is checked against the locked snapshot inside the unit,
// so a concurrent debit can never slip past it.
func (s *TransactionService) Debit(ctx context.Context, accountID string, req dto.DebitRequest, callerID string) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}

	var op *domain.Operation
	err := s.ledgerRepo.WithAccounts(ctx, []string{accountID}, func(tx portsrepo.LedgerTx) error {
		acc, ok := tx.Account(accountID)
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if err := requireOperable(acc); err != nil {
			return err
		}

		newBalance := acc.Balance.Sub(req.Amount)
		if newBalance.LessThan(acc.MinBalance()) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, accountID)
		}

		now := time.Now().UTC()
		if err := tx.UpdateBalance(ctx, accountID, newBalance, callerID, now); err != nil {
			return err
		}

		op = &domain.Operation{
			AccountID:   accountID,
			Amount:      req.Amount,
			Kind:        domain.Debit,
			Description: req.Description,
			CreatedAt:   now,
			CreatedBy:   callerID,
		}
		return tx.AppendOperation(ctx, op)
	})
	if err != nil {
		logger.Error("debit failed", "accountID", accountID, "error", err)
		return nil, err
	}

	logger.Info("debit committed", "accountID", accountID, "operationID", op.OperationID, "amount", req.Amount)
	return op, nil
}

// Transfer debits the source and credits the destination in one atomic unit.
// Both legs commit or neither does; partial transfers are unrepresentable.
// The returned slice holds exactly two operations, debit leg first, sharing
// one transfer ID.
func (s *TransactionService) Transfer(ctx context.Context, req dto.TransferRequest, callerID string) ([]domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}
	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	transferID := uuid.NewString()
	var legs []domain.Operation
	err := s.ledgerRepo.WithAccounts(ctx, []string{req.SourceAccountID, req.DestinationAccountID}, func(tx portsrepo.LedgerTx) error {
		source, ok := tx.Account(req.SourceAccountID)
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.SourceAccountID)
		}
		destination, ok := tx.Account(req.DestinationAccountID)
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.DestinationAccountID)
		}
		if err := requireOperable(source); err != nil {
			return err
		}
		if err := requireOperable(destination); err != nil {
			return err
		}

		newSourceBalance := source.Balance.Sub(req.Amount)
		if newSourceBalance.LessThan(source.MinBalance()) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, req.SourceAccountID)
		}

		now := time.Now().UTC()
		if err := tx.UpdateBalance(ctx, req.SourceAccountID, newSourceBalance, callerID, now); err != nil {
			return err
		}
		if err := tx.UpdateBalance(ctx, req.DestinationAccountID, destination.Balance.Add(req.Amount), callerID, now); err != nil {
			return err
		}

		debitLeg := domain.Operation{
			AccountID:   req.SourceAccountID,
			Amount:      req.Amount,
			Kind:        domain.Debit,
			Description: req.Description,
			TransferID:  transferID,
			CreatedAt:   now,
			CreatedBy:   callerID,
		}
		if err := tx.AppendOperation(ctx, &debitLeg); err != nil {
			return err
		}

		creditLeg := domain.Operation{
			AccountID:   req.DestinationAccountID,
			Amount:      req.Amount,
			Kind:        domain.Credit,
			Description: req.Description,
			TransferID:  transferID,
			CreatedAt:   now,
			CreatedBy:   callerID,
		}
		if err := tx.AppendOperation(ctx, &creditLeg); err != nil {
			return err
		}

		legs = []domain.Operation{debitLeg, creditLeg}
		return nil
	})
	if err != nil {
		logger.Error("transfer failed",
			"sourceAccountID", req.SourceAccountID,
			"destinationAccountID", req.DestinationAccountID,
			"error", err)
		return nil, err
	}

	logger.Info("transfer committed",
		"transferID", transferID,
		"sourceAccountID", req.SourceAccountID,
		"destinationAccountID", req.DestinationAccountID,
		"amount", req.Amount)
	return legs, nil
}

// validateAmount rejects non-positive amounts before any storage access.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	return nil
}

// requireOperable rejects operations on accounts outside the ACTIVE status.
func requireOperable(acc domain.Account) error {
	if acc.Status != domain.StatusActive {
		return fmt.Errorf("%w: account %s is %s, not ACTIVE", apperrors.ErrValidation, acc.AccountID, acc.Status)
	}
	return nil
}
