package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// record appends one immutable transaction row inside the caller's atomic
// unit. Reference codes are time-based with a random suffix; uniqueness is
// enforced by the store, and a collision is retried exactly once with a
// fresh code before the error surfaces.
func (s *Service) record(ctx context.Context, st store.Store, from, to *uint, amount int64, mode models.TransactionMode, description string, status models.TransactionStatus) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if from == nil && to == nil {
		return nil, ErrMissingAccount
	}

	txn := &models.Transaction{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
		Mode:          mode,
		Status:        status,
		Description:   description,
		Reference:     s.newRef(),
	}

	err := st.CreateTransaction(ctx, txn)
	if errors.Is(err, store.ErrDuplicateReference) {
		s.log.Warn("transaction reference collision, retrying",
			zap.String("reference", txn.Reference))
		txn.Reference = s.newRef()
		err = st.CreateTransaction(ctx, txn)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func newReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return strings.ToUpper(fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), suffix))
}
