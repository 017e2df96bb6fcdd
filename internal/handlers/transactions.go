package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dasakash26/Banking-Simulation/internal/httputil"
	"github.com/dasakash26/Banking-Simulation/internal/models"
)

type transactionRequest struct {
	FromAccountID *uint                  `json:"fromAccountId"`
	ToAccountID   *uint                  `json:"toAccountId"`
	Amount        int64                  `json:"amount"`
	Mode          models.TransactionMode `json:"mode"`
	Description   string                 `json:"description"`
}

// ProcessTransactionHandler accepts the three mutation shapes: both refs
// for a transfer, source-only for a debit, destination-only for a credit.
func ProcessTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeUPI
	}

	var (
		txn *models.Transaction
		err error
	)
	ctx := r.Context()
	switch {
	case req.FromAccountID != nil && req.ToAccountID != nil:
		txn, err = ledgerSvc.Transfer(ctx, *req.FromAccountID, *req.ToAccountID, req.Amount, req.Mode, req.Description)
	case req.FromAccountID != nil:
		txn, err = ledgerSvc.Debit(ctx, *req.FromAccountID, req.Amount, req.Mode, req.Description)
	case req.ToAccountID != nil:
		txn, err = ledgerSvc.Credit(ctx, *req.ToAccountID, req.Amount, req.Mode, req.Description)
	default:
		httputil.WriteError(w, http.StatusBadRequest, "at least one account ID is required")
		return
	}
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, txn, "Transaction successful")
}
