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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchCustomers(ctx context.Context, keyword string, limit int) ([]domain.Customer, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockAccountRepo  *MockAccountReader
	service          *services.CustomerService
	ctx              context.Context
}

func (s *CustomerServiceTestSuite) SetupTest() {
	s.mockCustomerRepo = new(MockCustomerRepository)
	s.mockAccountRepo = new(MockAccountReader)
	s.service = services.NewCustomerService(s.mockCustomerRepo, s.mockAccountRepo)
	s.ctx = context.Background()
}

func (s *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	req := dto.CreateCustomerRequest{Name: "Ada Lovelace", Email: "ada@example.com"}
	callerID := uuid.NewString()

	s.mockCustomerRepo.On("SaveCustomer", s.ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == req.Name && c.Email == req.Email && c.CustomerID != "" && c.CreatedBy == callerID
	})).Return(nil).Once()

	customer, err := s.service.CreateCustomer(s.ctx, req, callerID)

	s.Require().NoError(err)
	s.Equal(req.Name, customer.Name)
	s.NotEmpty(customer.CustomerID)
	s.mockCustomerRepo.AssertExpectations(s.T())
}

func (s *CustomerServiceTestSuite) TestListCustomers_SearchUsesKeyword() {
	expected := []domain.Customer{{CustomerID: uuid.NewString(), Name: "Ada"}}
	s.mockCustomerRepo.On("SearchCustomers", s.ctx, "ada", 20).Return(expected, nil).Once()

	customers, err := s.service.ListCustomers(s.ctx, dto.ListCustomersParams{Limit: 20, Search: "ada"})

	s.Require().NoError(err)
	s.Equal(expected, customers)
	s.mockCustomerRepo.AssertNotCalled(s.T(), "ListCustomers")
}

func (s *CustomerServiceTestSuite) TestUpdateCustomer_PartialFields() {
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID: customerID,
		Name:       "Old Name",
		Email:      "old@example.com",
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().Add(-time.Hour),
			CreatedBy: "seed",
		},
	}
	newName := "New Name"

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).Return(existing, nil).Once()
	s.mockCustomerRepo.On("UpdateCustomer", s.ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == newName && c.Email == "old@example.com"
	})).Return(nil).Once()

	customer, err := s.service.UpdateCustomer(s.ctx, customerID, dto.UpdateCustomerRequest{Name: &newName}, "caller-1")

	s.Require().NoError(err)
	s.Equal(newName, customer.Name)
	s.Equal("old@example.com", customer.Email)
	s.mockCustomerRepo.AssertExpectations(s.T())
}

func (s *CustomerServiceTestSuite) TestDeleteCustomer_BlockedWhileAccountsExist() {
	customerID := uuid.NewString()
	existing := &domain.Customer{CustomerID: customerID, Name: "Ada"}

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).Return(existing, nil).Once()
	s.mockAccountRepo.On("ListAccountsByCustomer", s.ctx, customerID).
		Return([]domain.Account{{AccountID: uuid.NewString(), CustomerID: customerID}}, nil).Once()

	err := s.service.DeleteCustomer(s.ctx, customerID, "caller-1")

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockCustomerRepo.AssertNotCalled(s.T(), "DeleteCustomer")
}

func (s *CustomerServiceTestSuite) TestDeleteCustomer_Success() {
	customerID := uuid.NewString()
	existing := &domain.Customer{CustomerID: customerID, Name: "Ada"}

	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).Return(existing, nil).Once()
	s.mockAccountRepo.On("ListAccountsByCustomer", s.ctx, customerID).Return([]domain.Account{}, nil).Once()
	s.mockCustomerRepo.On("DeleteCustomer", s.ctx, customerID).Return(nil).Once()

	err := s.service.DeleteCustomer(s.ctx, customerID, "caller-1")

	s.Require().NoError(err)
	s.mockCustomerRepo.AssertExpectations(s.T())
}

func (s *CustomerServiceTestSuite) TestDeleteCustomer_NotFound() {
	customerID := uuid.NewString()
	s.mockCustomerRepo.On("FindCustomerByID", s.ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteCustomer(s.ctx, customerID, "caller-1")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
