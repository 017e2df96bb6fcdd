package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dasakash26/Banking-Simulation/internal/httputil"
	"github.com/dasakash26/Banking-Simulation/internal/simulation"
)

type spendRequest struct {
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

// SpendHandler debits an account by number with the floor-at-zero policy:
// an overdraw silently empties the account instead of failing. EarnHandler
// is the hard-failing credit counterpart. The divergent overdraw policies
// are deliberate; see AdjustBalance.
func SpendHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSpend(w, r)
	if !ok {
		return
	}
	acct, err := ledgerStore.GetAccountByNumber(r.Context(), req.AccountNumber)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	balance, err := ledgerSvc.AdjustBalance(r.Context(), acct.ID, -req.Amount, true)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"balance": balance}, "Transaction successful")
}

func EarnHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSpend(w, r)
	if !ok {
		return
	}
	acct, err := ledgerStore.GetAccountByNumber(r.Context(), req.AccountNumber)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	balance, err := ledgerSvc.AdjustBalance(r.Context(), acct.ID, req.Amount, false)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"balance": balance}, "Transaction successful")
}

func decodeSpend(w http.ResponseWriter, r *http.Request) (spendRequest, bool) {
	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.AccountNumber == "" || req.Amount <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "accountNumber and a positive amount are required")
		return req, false
	}
	return req, true
}

func runBatch(w http.ResponseWriter, r *http.Request, msg string, run func(context.Context) (simulation.Result, error)) {
	res, err := run(r.Context())
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res, msg)
}

func IncomeCycleHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Income cycle successful", simEngine.RunIncomeCycle)
}

func LoanEMIHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Loan EMI repayment successful", simEngine.RunEMICycle)
}

func RevenueGenHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Revenue generation successful", simEngine.RunRevenueGeneration)
}

func MonthlyExpensesHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Monthly expenses simulation completed", simEngine.RunMonthlyExpenses)
}

func PeerSimulationHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Peer simulation completed", simEngine.RunPeerSimulation)
}

func SimulateHandler(w http.ResponseWriter, r *http.Request) {
	runBatch(w, r, "Realistic simulation completed", simEngine.RunRealisticCycle)
}
