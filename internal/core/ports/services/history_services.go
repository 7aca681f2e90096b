package services

import (
	"context"

	"github.com/digibank/backend/internal/dto"
)

// HistorySvcFacade produces ordered, paginated views of an account's ledger
// entries plus its current balance. Pure reads; never blocks writers.
type HistorySvcFacade interface {
	GetAccountHistory(ctx context.Context, accountID string, page int, pageSize int) (*dto.AccountHistoryResponse, error)
}
