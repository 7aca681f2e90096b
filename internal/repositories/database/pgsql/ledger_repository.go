package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	"github.com/digibank/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository that opens atomic units over
// account rows. It is the only writer of balances and operations.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// WithAccounts locks the named account rows with SELECT ... FOR UPDATE in
// ascending account-ID order, runs fn, and commits when fn returns nil. Row
// locks are taken one at a time so the acquisition order is the sorted order,
// not the planner's scan order; two units over the same pair of accounts
// always lock in the same sequence and cannot deadlock each other.
func (r *PgxLedgerRepository) WithAccounts(ctx context.Context, accountIDs []string, fn func(tx portsrepo.LedgerTx) error) error {
	sorted := uniqueSorted(accountIDs)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	locked := make(map[string]domain.Account, len(sorted))
	for _, id := range sorted {
		m, err := scanAccount(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
			return apperrors.NewAppError(500, "failed to lock account "+id, err)
		}
		locked[id] = mapping.ToDomainAccount(*m)
	}

	if err := fn(&pgxLedgerTx{tx: tx, accounts: locked}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// pgxLedgerTx is the atomic unit handed to the transaction coordinator. All
// writes ride on one pgx transaction; rollback discards them together.
type pgxLedgerTx struct {
	tx       pgx.Tx
	accounts map[string]domain.Account
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) Account(accountID string) (domain.Account, bool) {
	acc, ok := t.accounts[accountID]
	return acc, ok
}

// UpdateBalance persists a new balance for a locked account. The invariant
// is re-validated against the locked snapshot; a violation here means the
// coordinator's own validation was bypassed, so the unit aborts with
// ErrInvariantViolation rather than clamping.
func (t *pgxLedgerTx) UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, callerID string, now time.Time) error {
	acc, ok := t.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s was not locked by this unit", apperrors.ErrInternal, accountID)
	}

	if err := acc.ValidateBalance(newBalance); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvariantViolation, err)
	}

	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	ct, err := t.tx.Exec(ctx, query, accountID, newBalance, now, callerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance of account "+accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s vanished during balance update", apperrors.ErrNotFound, accountID)
	}

	acc.Balance = newBalance
	t.accounts[accountID] = acc
	return nil
}

// AppendOperation inserts an immutable ledger entry. The database assigns
// the monotonic operation ID; the timestamp is filled in when absent.
func (t *pgxLedgerTx) AppendOperation(ctx context.Context, op *domain.Operation) error {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}

	m := mapping.ToModelOperation(*op)
	var transferID sql.NullString
	if m.TransferID != "" {
		transferID = sql.NullString{String: m.TransferID, Valid: true}
	}

	query := `
		INSERT INTO operations (account_id, amount, kind, description, transfer_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING operation_id;
	`
	err := t.tx.QueryRow(ctx, query,
		m.AccountID,
		m.Amount,
		m.Kind,
		m.Description,
		transferID,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&op.OperationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append operation for account "+op.AccountID, err)
	}
	return nil
}

// uniqueSorted returns the distinct IDs in ascending order.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
