package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the persisted shape of a ledger entry. operation_id is a
// BIGSERIAL so IDs are assigned monotonically by the database.
type Operation struct {
	OperationID int64           `db:"operation_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Kind        string          `db:"kind"`
	Description string          `db:"description"`
	TransferID  string          `db:"transfer_id"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
}
