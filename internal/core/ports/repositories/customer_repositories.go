package repositories

import (
	"context"

	"github.com/digibank/backend/internal/core/domain"
)

// CustomerRepository defines persistence operations for customer records.
type CustomerRepository interface {
	// SaveCustomer persists a new customer. Returns apperrors.ErrDuplicate
	// when the customer ID is already taken.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByID retrieves a customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers ordered by name.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// SearchCustomers retrieves customers whose name or email contains the
	// keyword, case-insensitively.
	SearchCustomers(ctx context.Context, keyword string, limit int) ([]domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer record. Callers must ensure the
	// customer owns no accounts before deleting.
	DeleteCustomer(ctx context.Context, customerID string) error
}
