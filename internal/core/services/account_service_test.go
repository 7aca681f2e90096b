package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/core/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository (reader + writer) ---
type MockAccountRepository struct {
	MockAccountReader
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, status, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCustomerRepo *MockCustomerRepository
	service          *services.AccountService
	ctx              context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCustomerRepo = new(MockCustomerRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, s.mockCustomerRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TestCreateAccount_StandardSuccess() {
	customerID := uuid.NewString()
	req := dto.CreateAccountRequest{
		CustomerID:     customerID,
		CurrencyCode:   "EUR",
		Kind:           domain.KindStandard,
		InitialBalance: decimal.NewFromInt(100),
		OverdraftLimit: decimal.NewFromInt(500),
	}

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.CustomerID == customerID &&
			a.Kind == domain.KindStandard &&
			a.Status == domain.StatusCreated &&
			a.Balance.Equal(decimal.NewFromInt(100)) &&
			a.AccountID != ""
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, req, "caller-1")

	s.Require().NoError(err)
	s.Equal(domain.StatusCreated, account.Status)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_CallerSuppliedID() {
	customerID := uuid.NewString()
	accountID := "ACC-42"
	req := dto.CreateAccountRequest{
		AccountID:    &accountID,
		CustomerID:   customerID,
		CurrencyCode: "EUR",
		Kind:         domain.KindInterestBearing,
		InterestRate: decimal.NewFromFloat(0.015),
	}

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == accountID
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, req, "caller-1")

	s.Require().NoError(err)
	s.Equal(accountID, account.AccountID)
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateIDPassesThrough() {
	customerID := uuid.NewString()
	accountID := "ACC-42"
	req := dto.CreateAccountRequest{
		AccountID:    &accountID,
		CustomerID:   customerID,
		CurrencyCode: "EUR",
		Kind:         domain.KindStandard,
	}

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(s.ctx, req, "caller-1")

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownCustomer() {
	req := dto.CreateAccountRequest{
		CustomerID:   "missing",
		CurrencyCode: "EUR",
		Kind:         domain.KindStandard,
	}
	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(s.ctx, req, "caller-1")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount")
}

func (s *AccountServiceTestSuite) TestCreateAccount_MismatchedVariantFields() {
	customerID := uuid.NewString()

	// Interest rate on a standard account.
	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		CustomerID:   customerID,
		CurrencyCode: "EUR",
		Kind:         domain.KindStandard,
		InterestRate: decimal.NewFromFloat(0.02),
	}, "caller-1")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	// Overdraft limit on an interest-bearing account.
	_, err = s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		CustomerID:     customerID,
		CurrencyCode:   "EUR",
		Kind:           domain.KindInterestBearing,
		OverdraftLimit: decimal.NewFromInt(100),
	}, "caller-1")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	s.mockCustomerRepo.AssertNotCalled(s.T(), "FindCustomerByID")
}

func (s *AccountServiceTestSuite) TestUpdateAccountStatus_ValidTransition() {
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID: accountID,
		Kind:      domain.KindStandard,
		Status:    domain.StatusCreated,
	}

	s.mockAccountRepo.On("FindAccountByID", s.ctx, accountID).Return(existing, nil).Once()
	s.mockAccountRepo.On("UpdateAccountStatus", s.ctx, accountID, domain.StatusActive, "caller-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	account, err := s.service.UpdateAccountStatus(s.ctx, accountID, dto.UpdateAccountStatusRequest{Status: domain.StatusActive}, "caller-1")

	s.Require().NoError(err)
	s.Equal(domain.StatusActive, account.Status)
}

func (s *AccountServiceTestSuite) TestUpdateAccountStatus_InvalidTransition() {
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID: accountID,
		Kind:      domain.KindStandard,
		Status:    domain.StatusCreated,
	}

	s.mockAccountRepo.On("FindAccountByID", s.ctx, accountID).Return(existing, nil).Once()

	// CREATED cannot jump straight to SUSPENDED.
	_, err := s.service.UpdateAccountStatus(s.ctx, accountID, dto.UpdateAccountStatusRequest{Status: domain.StatusSuspended}, "caller-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateAccountStatus")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
