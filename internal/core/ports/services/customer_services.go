package services

import (
	"context"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/dto"
)

// CustomerSvcFacade exposes customer management to the transport layer.
// callerID identifies the already-authorized caller for audit purposes.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, callerID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, callerID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer that owns no accounts. It fails with
	// apperrors.ErrConflict while any account still references the customer.
	DeleteCustomer(ctx context.Context, customerID string, callerID string) error
}
