package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/core/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// HistoryServiceTestSuite runs against the in-memory store seeded through
// the real transaction coordinator, so page contents reflect committed
// operations only.
type HistoryServiceTestSuite struct {
	suite.Suite
	store       *memory.Store
	history     *services.HistoryService
	transaction *services.TransactionService
	ctx         context.Context
	accountID   string
}

func (s *HistoryServiceTestSuite) SetupTest() {
	repos, store := memory.NewRepositoryProvider()
	s.store = store
	s.history = services.NewHistoryService(repos.AccountRepo, repos.OperationRepo)
	s.transaction = services.NewTransactionService(repos.LedgerRepo)
	s.ctx = context.Background()

	now := time.Now().UTC()
	s.accountID = uuid.NewString()
	s.Require().NoError(store.SaveAccount(s.ctx, domain.Account{
		AccountID:    s.accountID,
		CustomerID:   uuid.NewString(),
		CurrencyCode: "EUR",
		Kind:         domain.KindStandard,
		Status:       domain.StatusActive,
		Balance:      decimal.NewFromInt(1000),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "seed",
			LastUpdatedAt: now,
			LastUpdatedBy: "seed",
		},
	}))
}

// seedOperations commits n credits of 1 each.
func (s *HistoryServiceTestSuite) seedOperations(n int) {
	for i := 0; i < n; i++ {
		_, err := s.transaction.Credit(s.ctx, s.accountID, dto.CreditRequest{
			Amount:      decimal.NewFromInt(1),
			Description: fmt.Sprintf("op %d", i),
		}, "seed")
		s.Require().NoError(err)
	}
}

func (s *HistoryServiceTestSuite) TestGetAccountHistory_PagingAndOrdering() {
	s.seedOperations(25)

	page, err := s.history.GetAccountHistory(s.ctx, s.accountID, 0, 10)
	s.Require().NoError(err)
	s.Equal(0, page.Page)
	s.Equal(10, page.PageSize)
	s.Equal(3, page.TotalPages)
	s.Require().Len(page.Operations, 10)

	// Newest first: operation IDs strictly descending.
	for i := 1; i < len(page.Operations); i++ {
		s.Greater(page.Operations[i-1].OperationID, page.Operations[i].OperationID)
	}

	last, err := s.history.GetAccountHistory(s.ctx, s.accountID, 2, 10)
	s.Require().NoError(err)
	s.Len(last.Operations, 5)

	// Pages must not overlap.
	s.Greater(page.Operations[9].OperationID, last.Operations[0].OperationID)
}

func (s *HistoryServiceTestSuite) TestGetAccountHistory_PageBeyondEnd() {
	s.seedOperations(3)

	page, err := s.history.GetAccountHistory(s.ctx, s.accountID, 5, 10)
	s.Require().NoError(err)
	s.Empty(page.Operations)
	s.Equal(1, page.TotalPages)
}

func (s *HistoryServiceTestSuite) TestGetAccountHistory_EmptyAccount() {
	page, err := s.history.GetAccountHistory(s.ctx, s.accountID, 0, 10)
	s.Require().NoError(err)
	s.Empty(page.Operations)
	s.Equal(0, page.TotalPages)
	s.True(page.Balance.Equal(decimal.NewFromInt(1000)))
}

func (s *HistoryServiceTestSuite) TestGetAccountHistory_InvalidPaging() {
	_, err := s.history.GetAccountHistory(s.ctx, s.accountID, -1, 10)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.history.GetAccountHistory(s.ctx, s.accountID, 0, 0)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *HistoryServiceTestSuite) TestGetAccountHistory_UnknownAccount() {
	_, err := s.history.GetAccountHistory(s.ctx, "missing", 0, 10)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
