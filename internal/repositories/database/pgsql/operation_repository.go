package pgsql

import (
	"context"
	"database/sql"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOperationRepository struct {
	BaseRepository
}

// newPgxOperationRepository creates a new read-side repository for the
// operation ledger. Writes go through the ledger repository's atomic unit.
func newPgxOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepository {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepository = (*PgxOperationRepository)(nil)

// FindOperationsByAccountID returns one page of an account's operations,
// newest first, plus the account's total operation count. Ordering is
// created_at DESC with operation_id DESC as the deterministic tiebreak.
func (r *PgxOperationRepository) FindOperationsByAccountID(ctx context.Context, accountID string, page int, pageSize int) ([]domain.Operation, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM operations WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count operations for account "+accountID, err)
	}

	query := `
		SELECT operation_id, account_id, amount, kind, description, transfer_id, created_at, created_by
		FROM operations
		WHERE account_id = $1
		ORDER BY created_at DESC, operation_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query operations for account "+accountID, err)
	}
	defer rows.Close()

	operations := []domain.Operation{}
	for rows.Next() {
		var m models.Operation
		var transferID sql.NullString
		err := rows.Scan(
			&m.OperationID,
			&m.AccountID,
			&m.Amount,
			&m.Kind,
			&m.Description,
			&transferID,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan operation row", err)
		}
		if transferID.Valid {
			m.TransferID = transferID.String
		}
		operations = append(operations, mapping.ToDomainOperation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating operation rows", err)
	}

	return operations, total, nil
}
