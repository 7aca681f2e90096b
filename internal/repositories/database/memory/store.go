// Package memory provides an in-memory implementation of the repository
// ports with the same atomicity and locking semantics as the Postgres
// backend. It backs the transaction coordinator tests and works as a
// lightweight store for local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	"github.com/digibank/backend/internal/core/domain"
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store holds all records. The RWMutex guards record state; the per-account
// unit mutexes serialize atomic units the way row locks do in Postgres.
type Store struct {
	mu         sync.RWMutex
	customers  map[string]domain.Customer
	accounts   map[string]domain.Account
	operations map[string][]domain.Operation
	nextOpID   int64

	unitMu    sync.Mutex // protects unitLocks
	unitLocks map[string]*sync.Mutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		customers:  make(map[string]domain.Customer),
		accounts:   make(map[string]domain.Account),
		operations: make(map[string][]domain.Operation),
		unitLocks:  make(map[string]*sync.Mutex),
	}
}

// NewRepositoryProvider wires every repository port to one shared store.
func NewRepositoryProvider() (portsrepo.RepositoryProvider, *Store) {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		CustomerRepo:  s,
		AccountRepo:   s,
		OperationRepo: s,
		LedgerRepo:    s,
	}, s
}

var (
	_ portsrepo.CustomerRepository  = (*Store)(nil)
	_ portsrepo.AccountRepository   = (*Store)(nil)
	_ portsrepo.OperationRepository = (*Store)(nil)
	_ portsrepo.LedgerRepository    = (*Store)(nil)
)

// --- CustomerRepository ---

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.CustomerID]; exists {
		return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.CustomerID)
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].CustomerID < all[j].CustomerID
	})
	return paginate(all, limit, offset), nil
}

func (s *Store) SearchCustomers(ctx context.Context, keyword string, limit int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []domain.Customer{}
	for _, c := range s.customers {
		if containsFold(c.Name, keyword) || containsFold(c.Email, keyword) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].CustomerID < matched[j].CustomerID
	})
	return paginate(matched, limit, 0), nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.CustomerID]; !ok {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customer.CustomerID)
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customerID]; !ok {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	delete(s.customers, customerID)
	return nil
}

// --- AccountRepository ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].AccountID < all[j].AccountID
	})
	return paginate(all, limit, offset), nil
}

func (s *Store) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := []domain.Account{}
	for _, a := range s.accounts {
		if a.CustomerID == customerID {
			owned = append(owned, a)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.Before(owned[j].CreatedAt)
		}
		return owned[i].AccountID < owned[j].AccountID
	})
	return owned, nil
}

func (s *Store) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	a.Status = status
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	s.accounts[accountID] = a
	return nil
}

// --- OperationRepository ---

func (s *Store) FindOperationsByAccountID(ctx context.Context, accountID string, page int, pageSize int) ([]domain.Operation, int64, error) {
	s.mu.RLock()
	ops := append([]domain.Operation(nil), s.operations[accountID]...)
	s.mu.RUnlock()

	// Newest first, operation ID breaking timestamp ties.
	sort.Slice(ops, func(i, j int) bool {
		if !ops[i].CreatedAt.Equal(ops[j].CreatedAt) {
			return ops[i].CreatedAt.After(ops[j].CreatedAt)
		}
		return ops[i].OperationID > ops[j].OperationID
	})

	total := int64(len(ops))
	start := page * pageSize
	if start >= len(ops) {
		return []domain.Operation{}, total, nil
	}
	end := start + pageSize
	if end > len(ops) {
		end = len(ops)
	}
	return ops[start:end], total, nil
}

// --- LedgerRepository ---

// unitLock returns the mutex serializing atomic units over one account.
func (s *Store) unitLock(accountID string) *sync.Mutex {
	s.unitMu.Lock()
	defer s.unitMu.Unlock()
	if _, ok := s.unitLocks[accountID]; !ok {
		s.unitLocks[accountID] = &sync.Mutex{}
	}
	return s.unitLocks[accountID]
}

// WithAccounts acquires the unit mutex of every named account in ascending
// account-ID order, mirroring the row-lock order of the Postgres backend, so
// opposed transfers over the same pair cannot deadlock. Writes staged by fn
// become visible in one step under the store lock; an error discards them.
func (s *Store) WithAccounts(ctx context.Context, accountIDs []string, fn func(tx portsrepo.LedgerTx) error) error {
	sorted := uniqueSorted(accountIDs)

	for _, id := range sorted {
		s.unitLock(id).Lock()
	}
	defer func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			s.unitLock(sorted[i]).Unlock()
		}
	}()

	s.mu.RLock()
	snapshot := make(map[string]domain.Account, len(sorted))
	var missing string
	for _, id := range sorted {
		a, ok := s.accounts[id]
		if !ok {
			missing = id
			break
		}
		snapshot[id] = a
	}
	s.mu.RUnlock()
	if missing != "" {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, missing)
	}

	tx := &memLedgerTx{store: s, accounts: snapshot, dirty: make(map[string]bool)}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit: apply balances and staged operations in one step. Only the
	// balance and audit fields are written back, the way the Postgres
	// backend's UPDATE names only those columns, so a concurrent status
	// change is never clobbered by a committing unit.
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, staged := range tx.accounts {
		if !tx.dirty[id] {
			continue
		}
		cur, ok := s.accounts[id]
		if !ok {
			continue
		}
		cur.Balance = staged.Balance
		cur.LastUpdatedAt = staged.LastUpdatedAt
		cur.LastUpdatedBy = staged.LastUpdatedBy
		s.accounts[id] = cur
	}
	for _, op := range tx.staged {
		s.operations[op.AccountID] = append(s.operations[op.AccountID], op)
	}
	return nil
}

// memLedgerTx stages writes against snapshot copies; nothing touches the
// store until the unit commits.
type memLedgerTx struct {
	store    *Store
	accounts map[string]domain.Account
	dirty    map[string]bool
	staged   []domain.Operation
}

var _ portsrepo.LedgerTx = (*memLedgerTx)(nil)

func (t *memLedgerTx) Account(accountID string) (domain.Account, bool) {
	acc, ok := t.accounts[accountID]
	return acc, ok
}

func (t *memLedgerTx) UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, callerID string, now time.Time) error {
	acc, ok := t.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s was not locked by this unit", apperrors.ErrInternal, accountID)
	}
	if err := acc.ValidateBalance(newBalance); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvariantViolation, err)
	}
	acc.Balance = newBalance
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = callerID
	t.accounts[accountID] = acc
	t.dirty[accountID] = true
	return nil
}

func (t *memLedgerTx) AppendOperation(ctx context.Context, op *domain.Operation) error {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}
	t.store.mu.Lock()
	t.store.nextOpID++
	op.OperationID = t.store.nextOpID
	t.store.mu.Unlock()

	t.staged = append(t.staged, *op)
	return nil
}

// --- helpers ---

func paginate[T any](items []T, limit int, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[offset:end]...)
}

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

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
