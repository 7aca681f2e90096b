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

// AccountService implements account creation and lifecycle management.
// Balances are read here but only ever written by the TransactionService.
type AccountService struct {
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, customerRepo: customerRepo}
}

// CreateAccount opens a new account for an existing customer. The account ID
// may be supplied by the caller or generated; a taken ID fails with
// ErrDuplicate and changes nothing. New accounts start in CREATED status.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, callerID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidKind(req.Kind) {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.InitialBalance.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}
	switch req.Kind {
	case domain.KindStandard:
		if req.OverdraftLimit.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: overdraft limit must not be negative", apperrors.ErrValidation)
		}
		if !req.InterestRate.IsZero() {
			return nil, fmt.Errorf("%w: interest rate does not apply to STANDARD accounts", apperrors.ErrValidation)
		}
	case domain.KindInterestBearing:
		if req.InterestRate.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
		}
		if !req.OverdraftLimit.IsZero() {
			return nil, fmt.Errorf("%w: overdraft limit does not apply to INTEREST_BEARING accounts", apperrors.ErrValidation)
		}
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	accountID := uuid.NewString()
	if req.AccountID != nil && *req.AccountID != "" {
		accountID = *req.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      accountID,
		CustomerID:     req.CustomerID,
		CurrencyCode:   req.CurrencyCode,
		Kind:           req.Kind,
		Status:         domain.StatusCreated,
		Balance:        req.InitialBalance,
		OverdraftLimit: req.OverdraftLimit,
		InterestRate:   req.InterestRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerID,
			LastUpdatedAt: now,
			LastUpdatedBy: callerID,
		},
	}

	if err := account.ValidateBalance(account.Balance); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("failed to save account", "accountID", accountID, "error", err)
		return nil, err
	}

	logger.Info("account created", "accountID", accountID, "customerID", req.CustomerID, "kind", req.Kind)
	return &account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *AccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// ListAccountsByCustomer retrieves every account owned by a customer.
func (s *AccountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountsByCustomer(ctx, customerID)
}

// UpdateAccountStatus moves an account along its lifecycle. Only
// CREATED->ACTIVE and ACTIVE<->SUSPENDED transitions are allowed.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, accountID string, req dto.UpdateAccountStatusRequest, callerID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidStatusTransition(account.Status, req.Status) {
		return nil, fmt.Errorf("%w: cannot move account %s from %s to %s",
			apperrors.ErrValidation, accountID, account.Status, req.Status)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, req.Status, callerID, now); err != nil {
		logger.Error("failed to update account status", "accountID", accountID, "error", err)
		return nil, err
	}

	account.Status = req.Status
	account.LastUpdatedAt = now
	account.LastUpdatedBy = callerID

	logger.Info("account status updated", "accountID", accountID, "status", req.Status)
	return account, nil
}
