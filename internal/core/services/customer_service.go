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
)

// CustomerService implements customer management.
type CustomerService struct {
	customerRepo portsrepo.CustomerRepository
	accountRepo  portsrepo.AccountReader
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, accountRepo portsrepo.AccountReader) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, accountRepo: accountRepo}
}

// CreateCustomer registers a new customer with a generated ID.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, callerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerID,
			LastUpdatedAt: now,
			LastUpdatedBy: callerID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("failed to save customer", "error", err)
		return nil, err
	}

	logger.Info("customer created", "customerID", customer.CustomerID)
	return &customer, nil
}

// GetCustomerByID retrieves a customer by ID.
func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers lists customers, optionally filtered by a search keyword
// matched against name and email.
func (s *CustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}
	if params.Search != "" {
		return s.customerRepo.SearchCustomers(ctx, params.Search, params.Limit)
	}
	return s.customerRepo.ListCustomers(ctx, params.Limit, params.Offset)
}

// UpdateCustomer applies the provided fields to an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, callerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = callerID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("failed to update customer", "customerID", customerID, "error", err)
		return nil, err
	}

	logger.Info("customer updated", "customerID", customerID)
	return customer, nil
}

// DeleteCustomer removes a customer that owns no accounts. Deleting a
// customer with live accounts would strand their ledger history, so the
// request fails with ErrConflict until the accounts are gone.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string, callerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}

	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return fmt.Errorf("%w: customer %s still owns %d account(s)", apperrors.ErrConflict, customerID, len(accounts))
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		logger.Error("failed to delete customer", "customerID", customerID, "error", err)
		return err
	}

	logger.Info("customer deleted", "customerID", customerID, "deletedBy", callerID)
	return nil
}
