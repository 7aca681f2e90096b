package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind indicates whether a ledger entry credits or debits its account.
type OperationKind string

const (
	Credit OperationKind = "CREDIT"
	Debit  OperationKind = "DEBIT"
)

// Operation is an immutable ledger entry recording a single balance-affecting
// event on exactly one account. Operations are append-only: never updated or
// deleted after creation.
type Operation struct {
	OperationID int64           `json:"operationID"` // Monotonically assigned by the ledger
	AccountID   string          `json:"accountID"`   // FK -> accounts.account_id (Not Null)
	Amount      decimal.Decimal `json:"amount"`      // Positive magnitude
	Kind        OperationKind   `json:"kind"`
	Description string          `json:"description"`
	TransferID  string          `json:"transferID,omitempty"` // Correlates the two legs of a transfer
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// SignedAmount returns the amount with its ledger sign applied: positive for
// credits, negative for debits. Summing signed amounts over an account's
// operations reproduces the balance delta since the account was opened.
func (o Operation) SignedAmount() decimal.Decimal {
	if o.Kind == Debit {
		return o.Amount.Neg()
	}
	return o.Amount
}
