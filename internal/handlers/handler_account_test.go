package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/handlers"
	"github.com/digibank/backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock service facades ---

type MockCustomerSvc struct{ mock.Mock }

func (m *MockCustomerSvc) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, callerID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerSvc) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerSvc) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerSvc) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, callerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerSvc) DeleteCustomer(ctx context.Context, customerID string, callerID string) error {
	args := m.Called(ctx, customerID, callerID)
	return args.Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerSvc)(nil)

type MockAccountSvc struct{ mock.Mock }

func (m *MockAccountSvc) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, callerID string) (*domain.Account, error) {
	args := m.Called(ctx, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountSvc) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountSvc) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountSvc) UpdateAccountStatus(ctx context.Context, accountID string, req dto.UpdateAccountStatusRequest, callerID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountSvc)(nil)

type MockTransactionSvc struct{ mock.Mock }

func (m *MockTransactionSvc) Credit(ctx context.Context, accountID string, req dto.CreditRequest, callerID string) (*domain.Operation, error) {
	args := m.Called(ctx, accountID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockTransactionSvc) Debit(ctx context.Context, accountID string, req dto.DebitRequest, callerID string) (*domain.Operation, error) {
	args := m.Called(ctx, accountID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockTransactionSvc) Transfer(ctx context.Context, req dto.TransferRequest, callerID string) ([]domain.Operation, error) {
	args := m.Called(ctx, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Operation), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionSvc)(nil)

type MockHistorySvc struct{ mock.Mock }

func (m *MockHistorySvc) GetAccountHistory(ctx context.Context, accountID string, page int, pageSize int) (*dto.AccountHistoryResponse, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountHistoryResponse), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistorySvc)(nil)

type MockAuthSvc struct{ mock.Mock }

func (m *MockAuthSvc) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthSvc)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTransaction *MockTransactionSvc
	mockAccount     *MockAccountSvc
	mockHistory     *MockHistorySvc
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(callerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "digibank-test",
		Subject:   callerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransaction = new(MockTransactionSvc)
	suite.mockAccount = new(MockAccountSvc)
	suite.mockHistory = new(MockHistorySvc)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger routes in tests
	}
	container := &portssvc.ServiceContainer{
		Customer:    new(MockCustomerSvc),
		Account:     suite.mockAccount,
		Transaction: suite.mockTransaction,
		History:     suite.mockHistory,
		Auth:        new(MockAuthSvc),
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("test-caller"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCredit_Success() {
	accountID := uuid.NewString()
	expected := &domain.Operation{
		OperationID: 7,
		AccountID:   accountID,
		Amount:      decimal.NewFromInt(40),
		Kind:        domain.Credit,
		Description: "salary",
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   "test-caller",
	}

	suite.mockTransaction.On("Credit",
		mock.Anything,
		accountID,
		mock.MatchedBy(func(r dto.CreditRequest) bool { return r.Amount.Equal(decimal.NewFromInt(40)) }),
		"test-caller",
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/credit", accountID), dto.CreditRequest{
		Amount:      decimal.NewFromInt(40),
		Description: "salary",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OperationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.OperationID)
	suite.Equal(domain.Credit, resp.Kind)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDebit_InsufficientBalanceMapsTo422() {
	accountID := uuid.NewString()

	suite.mockTransaction.On("Debit", mock.Anything, accountID, mock.Anything, "test-caller").
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, accountID)).Once()

	w := suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/debit", accountID), dto.DebitRequest{
		Amount:      decimal.NewFromInt(999),
		Description: "too much",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestTransfer_Success() {
	src, dst := uuid.NewString(), uuid.NewString()
	transferID := uuid.NewString()
	legs := []domain.Operation{
		{OperationID: 1, AccountID: src, Amount: decimal.NewFromInt(25), Kind: domain.Debit, TransferID: transferID},
		{OperationID: 2, AccountID: dst, Amount: decimal.NewFromInt(25), Kind: domain.Credit, TransferID: transferID},
	}

	suite.mockTransaction.On("Transfer", mock.Anything, mock.MatchedBy(func(r dto.TransferRequest) bool {
		return r.SourceAccountID == src && r.DestinationAccountID == dst
	}), "test-caller").Return(legs, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{
		SourceAccountID:      src,
		DestinationAccountID: dst,
		Amount:               decimal.NewFromInt(25),
		Description:          "rent",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(transferID, resp.TransferID)
	suite.Equal(domain.Debit, resp.Debit.Kind)
	suite.Equal(domain.Credit, resp.Credit.Kind)
}

func (suite *AccountHandlerTestSuite) TestGetHistory_Success() {
	accountID := uuid.NewString()
	expected := &dto.AccountHistoryResponse{
		AccountID:  accountID,
		Balance:    decimal.NewFromInt(120),
		Page:       0,
		PageSize:   10,
		TotalPages: 1,
		Operations: []dto.OperationResponse{{OperationID: 1, AccountID: accountID, Amount: decimal.NewFromInt(120), Kind: domain.Credit}},
	}

	suite.mockHistory.On("GetAccountHistory", mock.Anything, accountID, 0, 10).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/history?page=0&pageSize=10", accountID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.TotalPages)
	suite.Len(resp.Operations, 1)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFoundMapsTo404() {
	accountID := uuid.NewString()
	suite.mockAccount.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
