package pgsql

import (
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		OperationRepo: newPgxOperationRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
	}
}
