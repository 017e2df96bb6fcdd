package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dasakash26/Banking-Simulation/internal/models"
)

// MemoryStore is a mutex-serialized, in-memory Store. RunAtomic snapshots
// mutable state before running fn and restores it on failure, giving the
// same all-or-nothing semantics as a database transaction. It backs tests
// and local runs without Postgres.
type MemoryStore struct {
	mu sync.Mutex

	nextID       uint
	users        map[uint]*models.User
	accounts     map[uint]*models.Account
	loans        map[uint]*models.Loan
	transactions []*models.Transaction
	refs         map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]*models.User),
		accounts: make(map[uint]*models.Account),
		loans:    make(map[uint]*models.Loan),
		refs:     make(map[string]struct{}),
	}
}

// AddUser, AddAccount and AddLoan seed state directly, outside any atomic
// unit. They return the stored copy with its assigned ID.

func (m *MemoryStore) AddUser(u models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.users[u.ID] = &u
	return &u
}

func (m *MemoryStore) AddAccount(a models.Account) *models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = &a
	return &a
}

func (m *MemoryStore) AddLoan(l models.Loan) *models.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l.ID = m.nextID
	l.CreatedAt = time.Now()
	m.loans[l.ID] = &l
	return &l
}

// Transactions returns a copy of the recorded transaction log.
func (m *MemoryStore) Transactions() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, *t)
	}
	return out
}

func (m *MemoryStore) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).GetAccount(ctx, id)
}

func (m *MemoryStore) GetAccountByNumber(ctx context.Context, number string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).GetAccountByNumber(ctx, number)
}

func (m *MemoryStore) UpdateAccountBalance(ctx context.Context, id uint, balance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).UpdateAccountBalance(ctx, id, balance)
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).CreateTransaction(ctx, txn)
}

func (m *MemoryStore) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).ListUsers(ctx, f)
}

func (m *MemoryStore) GetLoan(ctx context.Context, id uint) (*models.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).GetLoan(ctx, id)
}

func (m *MemoryStore) UpdateLoanRemaining(ctx context.Context, id uint, remaining int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{m}).UpdateLoanRemaining(ctx, id, remaining)
}

// RunAtomic holds the lock for the whole unit, so concurrent atomic units
// on the same store serialize. On error the pre-unit snapshot is restored.
func (m *MemoryStore) RunAtomic(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&memView{m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	nextID       uint
	accounts     map[uint]*models.Account
	loans        map[uint]*models.Loan
	transactions []*models.Transaction
	refs         map[string]struct{}
}

func (m *MemoryStore) snapshot() memSnapshot {
	snap := memSnapshot{
		nextID:       m.nextID,
		accounts:     make(map[uint]*models.Account, len(m.accounts)),
		loans:        make(map[uint]*models.Loan, len(m.loans)),
		transactions: append([]*models.Transaction(nil), m.transactions...),
		refs:         make(map[string]struct{}, len(m.refs)),
	}
	for id, a := range m.accounts {
		cp := *a
		snap.accounts[id] = &cp
	}
	for id, l := range m.loans {
		cp := *l
		snap.loans[id] = &cp
	}
	for ref := range m.refs {
		snap.refs[ref] = struct{}{}
	}
	return snap
}

func (m *MemoryStore) restore(snap memSnapshot) {
	m.nextID = snap.nextID
	m.accounts = snap.accounts
	m.loans = snap.loans
	m.transactions = snap.transactions
	m.refs = snap.refs
}

// memView performs the actual reads and writes. It assumes the store lock
// is held, which makes it safe both for single calls and inside RunAtomic.
type memView struct {
	m *MemoryStore
}

func (v *memView) GetAccount(_ context.Context, id uint) (*models.Account, error) {
	a, ok := v.m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (v *memView) GetAccountByNumber(_ context.Context, number string) (*models.Account, error) {
	for _, a := range v.m.accounts {
		if a.AccountNumber == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) UpdateAccountBalance(_ context.Context, id uint, balance int64) error {
	a, ok := v.m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	return nil
}

func (v *memView) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	if _, exists := v.m.refs[txn.Reference]; exists {
		return ErrDuplicateReference
	}
	v.m.nextID++
	txn.ID = v.m.nextID
	txn.CreatedAt = time.Now()
	cp := *txn
	v.m.transactions = append(v.m.transactions, &cp)
	v.m.refs[txn.Reference] = struct{}{}
	return nil
}

func (v *memView) ListUsers(_ context.Context, f UserFilter) ([]models.User, error) {
	ids := make([]uint, 0, len(v.m.users))
	for id := range v.m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []models.User
	for _, id := range ids {
		u := *v.m.users[id]
		if f.EmploymentType != "" && u.EmploymentType != f.EmploymentType {
			continue
		}
		u.Accounts = v.accountsOf(u.ID)
		u.Loans = v.loansOf(u.ID)
		users = append(users, u)
	}
	return users, nil
}

func (v *memView) GetLoan(_ context.Context, id uint) (*models.Loan, error) {
	l, ok := v.m.loans[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (v *memView) UpdateLoanRemaining(_ context.Context, id uint, remaining int64) error {
	l, ok := v.m.loans[id]
	if !ok {
		return ErrNotFound
	}
	l.RemainingAmount = remaining
	l.UpdatedAt = time.Now()
	return nil
}

// RunAtomic on a view is a nested unit: the caller already holds the lock
// and owns the snapshot, so fn just runs in the same unit.
func (v *memView) RunAtomic(_ context.Context, fn func(Store) error) error {
	return fn(v)
}

// accountsOf returns the user's accounts in creation order: the first one
// is the primary account.
func (v *memView) accountsOf(userID uint) []models.Account {
	var out []models.Account
	for _, a := range v.m.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *memView) loansOf(userID uint) []models.Loan {
	var out []models.Loan
	for _, l := range v.m.loans {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
