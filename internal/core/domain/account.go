package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountKind is the variant tag discriminating account subtypes.
type AccountKind string

const (
	// KindStandard accounts carry an overdraft limit; the balance may go
	// negative down to -OverdraftLimit.
	KindStandard AccountKind = "STANDARD"
	// KindInterestBearing accounts carry an interest rate (informational to
	// this core; accrual scheduling is out of scope) and must never go negative.
	KindInterestBearing AccountKind = "INTEREST_BEARING"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusCreated   AccountStatus = "CREATED"
	StatusActive    AccountStatus = "ACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
)

// Account represents a monetary account within the core domain.
// Balance is a fixed-point decimal, never a float.
type Account struct {
	AccountID      string          `json:"accountID"`    // Opaque unique ID (caller- or system-generated)
	CustomerID     string          `json:"customerID"`   // FK -> customers.customer_id (NON-NULL)
	CurrencyCode   string          `json:"currencyCode"` // e.g. "EUR"
	Kind           AccountKind     `json:"kind"`
	Status         AccountStatus   `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"` // STANDARD only
	InterestRate   decimal.Decimal `json:"interestRate"`   // INTEREST_BEARING only
	AuditFields
}

// MinBalance returns the lowest balance this account may hold, dispatched on
// the variant tag: -OverdraftLimit for standard accounts, zero for
// interest-bearing ones.
func (a Account) MinBalance() decimal.Decimal {
	if a.Kind == KindStandard {
		return a.OverdraftLimit.Neg()
	}
	return decimal.Zero
}

// ValidateBalance checks the account's balance invariant against a candidate
// balance. It returns a descriptive error naming the account when the
// candidate falls below the floor.
func (a Account) ValidateBalance(candidate decimal.Decimal) error {
	if floor := a.MinBalance(); candidate.LessThan(floor) {
		return fmt.Errorf("account %s: balance %s below floor %s", a.AccountID, candidate, floor)
	}
	return nil
}

// ValidKind reports whether k names a known account variant.
func ValidKind(k AccountKind) bool {
	return k == KindStandard || k == KindInterestBearing
}

// ValidStatusTransition reports whether an account may move from one status
// to another: CREATED activates once, ACTIVE and SUSPENDED toggle.
func ValidStatusTransition(from, to AccountStatus) bool {
	switch from {
	case StatusCreated:
		return to == StatusActive
	case StatusActive:
		return to == StatusSuspended
	case StatusSuspended:
		return to == StatusActive
	}
	return false
}
