package store

import (
	"context"
	"errors"

	"github.com/dasakash26/Banking-Simulation/internal/models"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateReference is returned when a transaction reference code
	// collides with an existing row.
	ErrDuplicateReference = errors.New("duplicate transaction reference")
	// ErrUnavailable wraps transient infrastructure failures. Callers may
	// retry the whole operation; the store never retries internally.
	ErrUnavailable = errors.New("store unavailable")
)

// UserFilter narrows ListUsers. The zero value selects every user.
type UserFilter struct {
	EmploymentType models.EmploymentType
}

// Store is the ledger's persistence contract. Any multi-step balance
// mutation (read-then-write, or debit+credit+record) must run inside
// RunAtomic; the Store handed to fn is bound to that atomic unit, so
// reads observe current state and writes commit or roll back together.
type Store interface {
	GetAccount(ctx context.Context, id uint) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*models.Account, error)
	UpdateAccountBalance(ctx context.Context, id uint, balance int64) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	// ListUsers preloads each user's accounts in creation order (the first
	// account is the user's primary account) and loans.
	ListUsers(ctx context.Context, f UserFilter) ([]models.User, error)
	GetLoan(ctx context.Context, id uint) (*models.Loan, error)
	UpdateLoanRemaining(ctx context.Context, id uint, remaining int64) error

	// RunAtomic executes fn inside a store-level transaction. Account reads
	// within the unit take row-level locks, so concurrent mutators of the
	// same account serialize instead of losing updates.
	RunAtomic(ctx context.Context, fn func(Store) error) error
}
