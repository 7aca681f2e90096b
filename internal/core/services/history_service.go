package services

import (
	"context"
	"fmt"

	"github.com/digibank/backend/internal/apperrors"
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
)

// HistoryService implements the read side of the ledger: paginated operation
// history with the account's current balance. It never writes.
type HistoryService struct {
	accountRepo   portsrepo.AccountReader
	operationRepo portsrepo.OperationRepository
}

var _ portssvc.HistorySvcFacade = (*HistoryService)(nil)

// NewHistoryService creates a new HistoryService.
func NewHistoryService(accountRepo portsrepo.AccountReader, operationRepo portsrepo.OperationRepository) *HistoryService {
	return &HistoryService{accountRepo: accountRepo, operationRepo: operationRepo}
}

// GetAccountHistory returns one page of the account's operations, newest
// first, plus the current balance and the total page count. page is
// 0-indexed; a page beyond the end yields an empty page with the correct
// total, not an error.
func (s *HistoryService) GetAccountHistory(ctx context.Context, accountID string, page int, pageSize int) (*dto.AccountHistoryResponse, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", apperrors.ErrValidation)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: pageSize must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	operations, total, err := s.operationRepo.FindOperationsByAccountID(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.AccountHistoryResponse{
		AccountID:  accountID,
		Balance:    account.Balance,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Operations: dto.ToOperationResponses(operations),
	}, nil
}
