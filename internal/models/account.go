package models

import "github.com/shopspring/decimal"

// Account is the persisted shape of an account record. The variant-specific
// columns (overdraft_limit, interest_rate) are stored flat and interpreted
// according to the kind tag.
type Account struct {
	AccountID      string          `db:"account_id"`
	CustomerID     string          `db:"customer_id"`
	CurrencyCode   string          `db:"currency_code"`
	Kind           string          `db:"kind"`
	Status         string          `db:"status"`
	Balance        decimal.Decimal `db:"balance"`
	OverdraftLimit decimal.Decimal `db:"overdraft_limit"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	AuditFields
}
