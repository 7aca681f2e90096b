package dto

import (
	"time"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditRequest deposits an amount onto an account.
type CreditRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	Description string          `json:"description" binding:"required"`
}

// DebitRequest withdraws an amount from an account.
type DebitRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	Description string          `json:"description" binding:"required"`
}

// TransferRequest moves an amount between two distinct accounts.
type TransferRequest struct {
	SourceAccountID      string          `json:"sourceAccountID" binding:"required"`
	DestinationAccountID string          `json:"destinationAccountID" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	Description          string          `json:"description" binding:"required"`
}

// OperationResponse defines the data returned for a ledger operation.
type OperationResponse struct {
	OperationID int64                `json:"operationID"`
	AccountID   string               `json:"accountID"`
	Amount      decimal.Decimal      `json:"amount"`
	Kind        domain.OperationKind `json:"kind"`
	Description string               `json:"description"`
	TransferID  string               `json:"transferID,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// TransferResponse returns both legs of a committed transfer.
type TransferResponse struct {
	TransferID string            `json:"transferID"`
	Debit      OperationResponse `json:"debit"`
	Credit     OperationResponse `json:"credit"`
}

// ToOperationResponse converts a domain.Operation to its response DTO.
func ToOperationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		OperationID: op.OperationID,
		AccountID:   op.AccountID,
		Amount:      op.Amount,
		Kind:        op.Kind,
		Description: op.Description,
		TransferID:  op.TransferID,
		CreatedAt:   op.CreatedAt,
	}
}

// ToOperationResponses converts a slice of domain operations.
func ToOperationResponses(ops []domain.Operation) []OperationResponse {
	res := make([]OperationResponse, len(ops))
	for i := range ops {
		res[i] = ToOperationResponse(&ops[i])
	}
	return res
}
