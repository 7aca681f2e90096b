package dto

import (
	"time"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// AccountID is optional; when absent the service generates one.
// OverdraftLimit applies to STANDARD accounts, InterestRate to
// INTEREST_BEARING ones; the service rejects mismatched fields.
type CreateAccountRequest struct {
	AccountID      *string            `json:"accountID"`
	CustomerID     string             `json:"customerID" binding:"required"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=STANDARD INTEREST_BEARING"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	OverdraftLimit decimal.Decimal    `json:"overdraftLimit"`
	InterestRate   decimal.Decimal    `json:"interestRate"`
}

// UpdateAccountStatusRequest moves an account to a new lifecycle status.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE SUSPENDED"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	CustomerID     string               `json:"customerID"`
	CurrencyCode   string               `json:"currencyCode"`
	Kind           domain.AccountKind   `json:"kind"`
	Status         domain.AccountStatus `json:"status"`
	Balance        decimal.Decimal      `json:"balance"`
	OverdraftLimit *decimal.Decimal     `json:"overdraftLimit,omitempty"`
	InterestRate   *decimal.Decimal     `json:"interestRate,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO. The
// variant-specific field of the other kind is omitted from the payload.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:     acc.AccountID,
		CustomerID:    acc.CustomerID,
		CurrencyCode:  acc.CurrencyCode,
		Kind:          acc.Kind,
		Status:        acc.Status,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
	switch acc.Kind {
	case domain.KindStandard:
		od := acc.OverdraftLimit
		resp.OverdraftLimit = &od
	case domain.KindInterestBearing:
		ir := acc.InterestRate
		resp.InterestRate = &ir
	}
	return resp
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
