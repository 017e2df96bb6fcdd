package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dasakash26/Banking-Simulation/internal/handlers"
	"github.com/dasakash26/Banking-Simulation/internal/ledger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/routes"
	"github.com/dasakash26/Banking-Simulation/internal/simulation"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(ms *store.MemoryStore) *chi.Mux {
	svc := ledger.NewService(ms, zap.NewNop())
	eng := simulation.NewEngine(ms, svc, simulation.DefaultConfig(), rand.New(rand.NewSource(1)), zap.NewNop())
	handlers.Init(ms, svc, eng)
	return routes.NewRoutes()
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func balanceOf(t *testing.T, ms *store.MemoryStore, id uint) int64 {
	t.Helper()
	acct, err := ms.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return acct.Balance
}

func TestProcessTransactionTransfer(t *testing.T) {
	ms := store.NewMemoryStore()
	a := ms.AddAccount(models.Account{AccountNumber: "AC1", Balance: 1000})
	b := ms.AddAccount(models.Account{AccountNumber: "AC2", Balance: 0})
	router := newTestRouter(ms)

	body := fmt.Sprintf(`{"fromAccountId":%d,"toAccountId":%d,"amount":300,"mode":"UPI"}`, a.ID, b.ID)
	rr := postJSON(t, router, "/transaction", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want=201, body=%s", rr.Code, rr.Body.String())
	}
	if got := balanceOf(t, ms, a.ID); got != 700 {
		t.Fatalf("source balance=%d want=700", got)
	}
	if got := balanceOf(t, ms, b.ID); got != 300 {
		t.Fatalf("destination balance=%d want=300", got)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Amount    int64  `json:"amount"`
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Data.Amount != 300 || resp.Data.Reference == "" {
		t.Fatalf("response=%s", rr.Body.String())
	}
}

func TestProcessTransactionInsufficientFunds(t *testing.T) {
	ms := store.NewMemoryStore()
	a := ms.AddAccount(models.Account{AccountNumber: "AC1", Balance: 100})
	b := ms.AddAccount(models.Account{AccountNumber: "AC2", Balance: 0})
	router := newTestRouter(ms)

	body := fmt.Sprintf(`{"fromAccountId":%d,"toAccountId":%d,"amount":300,"mode":"UPI"}`, a.ID, b.ID)
	rr := postJSON(t, router, "/transaction", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400, body=%s", rr.Code, rr.Body.String())
	}
	if got := balanceOf(t, ms, a.ID); got != 100 {
		t.Fatalf("source balance=%d want=100", got)
	}
}

func TestProcessTransactionRequiresAccount(t *testing.T) {
	ms := store.NewMemoryStore()
	router := newTestRouter(ms)

	rr := postJSON(t, router, "/transaction", `{"amount":300,"mode":"UPI"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rr.Code)
	}
}

func TestSpendFloorsAtZero(t *testing.T) {
	ms := store.NewMemoryStore()
	acct := ms.AddAccount(models.Account{AccountNumber: "AC100", Balance: 250})
	router := newTestRouter(ms)

	rr := postJSON(t, router, "/simulate/spending", `{"accountNumber":"AC100","amount":1000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=200, body=%s", rr.Code, rr.Body.String())
	}
	if got := balanceOf(t, ms, acct.ID); got != 0 {
		t.Fatalf("balance=%d want=0", got)
	}
}

func TestEarnCreditsAccount(t *testing.T) {
	ms := store.NewMemoryStore()
	acct := ms.AddAccount(models.Account{AccountNumber: "AC100", Balance: 250})
	router := newTestRouter(ms)

	rr := postJSON(t, router, "/simulate/earning", `{"accountNumber":"AC100","amount":750}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=200, body=%s", rr.Code, rr.Body.String())
	}
	if got := balanceOf(t, ms, acct.ID); got != 1000 {
		t.Fatalf("balance=%d want=1000", got)
	}

	rr = postJSON(t, router, "/simulate/earning", `{"accountNumber":"missing","amount":10}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", rr.Code)
	}
}
