package services

import (
	"context"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/dto"
)

// AccountSvcFacade exposes account management to the transport layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, callerID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
	UpdateAccountStatus(ctx context.Context, accountID string, req dto.UpdateAccountStatusRequest, callerID string) (*domain.Account, error)
}
