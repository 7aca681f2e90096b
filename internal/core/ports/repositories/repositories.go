package repositories

// RepositoryProvider bundles every repository implementation behind one
// injection point so main and the tests can swap storage backends wholesale.
type RepositoryProvider struct {
	CustomerRepo  CustomerRepository
	AccountRepo   AccountRepository
	OperationRepo OperationRepository
	LedgerRepo    LedgerRepository
}
