package ledger

import (
	"context"

	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"go.uber.org/zap"
)

// Transfer moves amount from one account to another as a single atomic
// unit: debit the source, credit the destination, then append the SUCCESS
// record. A failure at any step rolls back the whole unit. The debit is
// never floored; a transfer is all-or-nothing.
func (s *Service) Transfer(ctx context.Context, fromID, toID uint, amount int64, mode models.TransactionMode, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSameAccount
	}

	var txn *models.Transaction
	err := s.store.RunAtomic(ctx, func(st store.Store) error {
		if _, err := adjust(ctx, st, fromID, -amount, false); err != nil {
			return err
		}
		if _, err := adjust(ctx, st, toID, amount, false); err != nil {
			return err
		}
		t, err := s.record(ctx, st, &fromID, &toID, amount, mode, description, models.StatusSuccess)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("transfer committed",
		zap.Uint("from", fromID),
		zap.Uint("to", toID),
		zap.Int64("amount", amount),
		zap.String("reference", txn.Reference))
	return txn, nil
}
