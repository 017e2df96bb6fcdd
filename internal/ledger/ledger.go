// Package ledger implements the transactional balance-mutation core:
// single-account balance adjustment, immutable transaction recording and
// atomic two-account transfers. All authoritative state lives in the
// store; every mutation re-reads current balances inside its atomic unit.
package ledger

import (
	"context"

	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"go.uber.org/zap"
)

type Service struct {
	store  store.Store
	log    *zap.Logger
	newRef func() string
}

func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log, newRef: newReference}
}

// AdjustBalance applies a signed delta to one account inside a single
// atomic unit and returns the new balance. With floorAtZero set, a debit
// that exceeds the balance clamps the result to zero instead of failing;
// without it the debit fails with ErrInsufficientFunds and nothing is
// written.
func (s *Service) AdjustBalance(ctx context.Context, accountID uint, delta int64, floorAtZero bool) (int64, error) {
	var newBalance int64
	err := s.store.RunAtomic(ctx, func(st store.Store) error {
		bal, err := adjust(ctx, st, accountID, delta, floorAtZero)
		if err != nil {
			return err
		}
		newBalance = bal
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Credit adds amount to one account and records a destination-only
// transaction, as one atomic unit.
func (s *Service) Credit(ctx context.Context, toID uint, amount int64, mode models.TransactionMode, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	var txn *models.Transaction
	err := s.store.RunAtomic(ctx, func(st store.Store) error {
		if _, err := adjust(ctx, st, toID, amount, false); err != nil {
			return err
		}
		t, err := s.record(ctx, st, nil, &toID, amount, mode, description, models.StatusSuccess)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Debit removes amount from one account and records a source-only
// transaction, as one atomic unit. An overdraw fails with
// ErrInsufficientFunds.
func (s *Service) Debit(ctx context.Context, fromID uint, amount int64, mode models.TransactionMode, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	var txn *models.Transaction
	err := s.store.RunAtomic(ctx, func(st store.Store) error {
		if _, err := adjust(ctx, st, fromID, -amount, false); err != nil {
			return err
		}
		t, err := s.record(ctx, st, &fromID, nil, amount, mode, description, models.StatusSuccess)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// adjust re-reads the balance inside the caller's atomic unit, computes the
// new value and persists it. It is the only writer of account balances.
func adjust(ctx context.Context, st store.Store, accountID uint, delta int64, floorAtZero bool) (int64, error) {
	acct, err := st.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	balance := acct.Balance + delta
	if balance < 0 {
		if !floorAtZero {
			return 0, ErrInsufficientFunds
		}
		balance = 0
	}
	if err := st.UpdateAccountBalance(ctx, acct.ID, balance); err != nil {
		return 0, err
	}
	return balance, nil
}
