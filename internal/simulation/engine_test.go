package simulation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/dasakash26/Banking-Simulation/internal/ledger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"go.uber.org/zap"
)

func newEngine(ms *store.MemoryStore, cfg Config, seed int64) *Engine {
	svc := ledger.NewService(ms, zap.NewNop())
	return NewEngine(ms, svc, cfg, rand.New(rand.NewSource(seed)), zap.NewNop())
}

func addUserWithAccount(ms *store.MemoryStore, employment models.EmploymentType, income, balance int64) (*models.User, *models.Account) {
	u := ms.AddUser(models.User{
		PAN:            "AAAPA0000A",
		Name:           "Test User",
		EmploymentType: employment,
		Income:         income,
	})
	a := ms.AddAccount(models.Account{
		UserID:  u.ID,
		Type:    models.AccountSavings,
		Balance: balance,
	})
	return u, a
}

func balanceOf(t *testing.T, ms *store.MemoryStore, id uint) int64 {
	t.Helper()
	acct, err := ms.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAccount(%d): %v", id, err)
	}
	return acct.Balance
}

func TestIncomeCycleCreditsEmployedUsers(t *testing.T) {
	ms := store.NewMemoryStore()
	_, salaried := addUserWithAccount(ms, models.EmploymentEmployed, 50_000, 1_000)
	_, business := addUserWithAccount(ms, models.EmploymentBusiness, 80_000, 1_000)
	ms.AddUser(models.User{EmploymentType: models.EmploymentEmployed, Income: 40_000}) // no account

	eng := newEngine(ms, DefaultConfig(), 1)
	res, err := eng.RunIncomeCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 1 || res.Skipped != 1 {
		t.Fatalf("result=%+v want processed=1 skipped=1", res)
	}
	if got := balanceOf(t, ms, salaried.ID); got != 51_000 {
		t.Fatalf("salaried balance=%d want=51000", got)
	}
	if got := balanceOf(t, ms, business.ID); got != 1_000 {
		t.Fatalf("business balance=%d want unchanged 1000", got)
	}
}

func TestEMICyclePartialPayment(t *testing.T) {
	ms := store.NewMemoryStore()
	u, acct := addUserWithAccount(ms, models.EmploymentEmployed, 0, 200)
	loan := ms.AddLoan(models.Loan{
		AccountID:       acct.ID,
		UserID:          u.ID,
		Type:            models.LoanPersonal,
		Amount:          10_000,
		EMI:             500,
		RemainingAmount: 10_000,
	})

	eng := newEngine(ms, DefaultConfig(), 1)
	res, err := eng.RunEMICycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 1 {
		t.Fatalf("result=%+v want processed=1", res)
	}
	// Only the covered part of the EMI is debited.
	if got := balanceOf(t, ms, acct.ID); got != 0 {
		t.Fatalf("balance=%d want=0", got)
	}
	got, err := ms.GetLoan(context.Background(), loan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RemainingAmount != 9_800 {
		t.Fatalf("remaining=%d want=9800", got.RemainingAmount)
	}
}

func TestEMICycleCapsAtRemainingDebt(t *testing.T) {
	ms := store.NewMemoryStore()
	u, acct := addUserWithAccount(ms, models.EmploymentEmployed, 0, 1_000)
	loan := ms.AddLoan(models.Loan{
		AccountID:       acct.ID,
		UserID:          u.ID,
		Type:            models.LoanPersonal,
		Amount:          10_000,
		EMI:             500,
		RemainingAmount: 300,
	})

	eng := newEngine(ms, DefaultConfig(), 1)
	if _, err := eng.RunEMICycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := balanceOf(t, ms, acct.ID); got != 700 {
		t.Fatalf("balance=%d want=700", got)
	}
	got, err := ms.GetLoan(context.Background(), loan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RemainingAmount != 0 {
		t.Fatalf("remaining=%d want=0", got.RemainingAmount)
	}
}

func TestEMICycleSettlesLoansIndependently(t *testing.T) {
	ms := store.NewMemoryStore()
	u, acct := addUserWithAccount(ms, models.EmploymentEmployed, 0, 600)
	first := ms.AddLoan(models.Loan{
		AccountID: acct.ID, UserID: u.ID, Type: models.LoanHome,
		Amount: 50_000, EMI: 500, RemainingAmount: 50_000,
	})
	second := ms.AddLoan(models.Loan{
		AccountID: acct.ID, UserID: u.ID, Type: models.LoanCar,
		Amount: 20_000, EMI: 500, RemainingAmount: 20_000,
	})

	eng := newEngine(ms, DefaultConfig(), 1)
	if _, err := eng.RunEMICycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The first loan takes its full EMI; the second gets what is left.
	if got := balanceOf(t, ms, acct.ID); got != 0 {
		t.Fatalf("balance=%d want=0", got)
	}
	l1, _ := ms.GetLoan(context.Background(), first.ID)
	l2, _ := ms.GetLoan(context.Background(), second.ID)
	if l1.RemainingAmount != 49_500 {
		t.Fatalf("first remaining=%d want=49500", l1.RemainingAmount)
	}
	if l2.RemainingAmount != 19_900 {
		t.Fatalf("second remaining=%d want=19900", l2.RemainingAmount)
	}
}

func TestBatchSkipsUsersWithoutAccounts(t *testing.T) {
	ms := store.NewMemoryStore()
	accounts := make([]uint, 0, 9)
	for i := 0; i < 10; i++ {
		if i == 3 {
			ms.AddUser(models.User{EmploymentType: models.EmploymentEmployed, Income: 10_000})
			continue
		}
		_, a := addUserWithAccount(ms, models.EmploymentEmployed, 10_000, 0)
		accounts = append(accounts, a.ID)
	}

	eng := newEngine(ms, DefaultConfig(), 1)
	res, err := eng.RunIncomeCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 9 || res.Skipped != 1 {
		t.Fatalf("result=%+v want processed=9 skipped=1", res)
	}
	for _, id := range accounts {
		if got := balanceOf(t, ms, id); got != 10_000 {
			t.Fatalf("account %d balance=%d want=10000", id, got)
		}
	}
}

func TestMonthlyExpensesDebitWithinRange(t *testing.T) {
	ms := store.NewMemoryStore()
	_, funded := addUserWithAccount(ms, models.EmploymentEmployed, 0, 100_000)
	_, empty := addUserWithAccount(ms, models.EmploymentEmployed, 0, 0)

	eng := newEngine(ms, DefaultConfig(), 7)
	res, err := eng.RunMonthlyExpenses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 1 || res.Skipped != 1 {
		t.Fatalf("result=%+v want processed=1 skipped=1", res)
	}

	got := balanceOf(t, ms, funded.ID)
	expense := 100_000 - got
	if expense < 20_000 || expense > 40_000 {
		t.Fatalf("expense=%d want within [20000,40000]", expense)
	}
	if got := balanceOf(t, ms, empty.ID); got != 0 {
		t.Fatalf("empty account balance=%d want=0", got)
	}

	txns := ms.Transactions()
	if len(txns) != 1 {
		t.Fatalf("transaction count=%d want=1", len(txns))
	}
	txn := txns[0]
	if txn.Mode != models.ModePOS || txn.Amount != expense || txn.FromAccountID == nil || txn.ToAccountID != nil {
		t.Fatalf("transaction=%+v", txn)
	}
}

func TestRevenueGenerationTopsUpToDailyIncome(t *testing.T) {
	ms := store.NewMemoryStore()
	// 10_950_000 per year is exactly 1_000 per day.
	_, low := addUserWithAccount(ms, models.EmploymentBusiness, 10_950_000, 40)
	_, high := addUserWithAccount(ms, models.EmploymentBusiness, 10_950_000, 5_000)
	_, salaried := addUserWithAccount(ms, models.EmploymentEmployed, 10_950_000, 40)

	eng := newEngine(ms, DefaultConfig(), 1)
	res, err := eng.RunRevenueGeneration(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 2 {
		t.Fatalf("result=%+v want processed=2", res)
	}
	if got := balanceOf(t, ms, low.ID); got != 1_000 {
		t.Fatalf("low balance=%d want=1000", got)
	}
	if got := balanceOf(t, ms, high.ID); got != 5_000 {
		t.Fatalf("high balance=%d want unchanged 5000", got)
	}
	if got := balanceOf(t, ms, salaried.ID); got != 40 {
		t.Fatalf("salaried balance=%d want unchanged 40", got)
	}
}

func TestPeerSimulationConservesTotalBalance(t *testing.T) {
	ms := store.NewMemoryStore()
	cfg := DefaultConfig()
	cfg.TransferChance = 1.0
	cfg.TransferMin = 100
	cfg.TransferMax = 500

	ids := make([]uint, 0, 4)
	for i := 0; i < 4; i++ {
		_, a := addUserWithAccount(ms, models.EmploymentEmployed, 0, 10_000)
		ids = append(ids, a.ID)
	}

	eng := newEngine(ms, cfg, 11)
	res, err := eng.RunPeerSimulation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed+res.Skipped != 4 {
		t.Fatalf("result=%+v want 4 entities accounted for", res)
	}

	var total int64
	for _, id := range ids {
		bal := balanceOf(t, ms, id)
		if bal < 0 {
			t.Fatalf("account %d balance=%d is negative", id, bal)
		}
		total += bal
	}
	if total != 40_000 {
		t.Fatalf("total balance=%d want=40000", total)
	}
	if got := len(ms.Transactions()); got != res.Processed {
		t.Fatalf("transaction count=%d want=%d", got, res.Processed)
	}
}

func TestPeerSimulationToleratesFailures(t *testing.T) {
	ms := store.NewMemoryStore()
	cfg := DefaultConfig()
	cfg.TransferChance = 1.0
	cfg.TransferMin = 100
	cfg.TransferMax = 500

	// Broke users plus one with no account at all.
	addUserWithAccount(ms, models.EmploymentEmployed, 0, 0)
	addUserWithAccount(ms, models.EmploymentEmployed, 0, 0)
	ms.AddUser(models.User{EmploymentType: models.EmploymentEmployed})

	eng := newEngine(ms, cfg, 3)
	res, err := eng.RunPeerSimulation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 0 || res.Skipped != 3 {
		t.Fatalf("result=%+v want processed=0 skipped=3", res)
	}
}

func TestRealisticCycleIsDeterministicForSeed(t *testing.T) {
	build := func() (*store.MemoryStore, []uint) {
		ms := store.NewMemoryStore()
		var ids []uint
		balances := []int64{100, 600_000, 300_000, 0}
		types := []models.EmploymentType{
			models.EmploymentBusiness, models.EmploymentBusiness,
			models.EmploymentEmployed, models.EmploymentUnemployed,
		}
		for i := range balances {
			_, a := addUserWithAccount(ms, types[i], 1_000_000, balances[i])
			ids = append(ids, a.ID)
		}
		return ms, ids
	}

	msA, idsA := build()
	msB, idsB := build()

	resA, err := newEngine(msA, DefaultConfig(), 42).RunRealisticCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	resB, err := newEngine(msB, DefaultConfig(), 42).RunRealisticCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if resA != resB {
		t.Fatalf("results diverge: %+v vs %+v", resA, resB)
	}
	for i := range idsA {
		a := balanceOf(t, msA, idsA[i])
		b := balanceOf(t, msB, idsB[i])
		if a != b {
			t.Fatalf("account %d balances diverge: %d vs %d", i, a, b)
		}
		if a < 0 {
			t.Fatalf("account %d balance=%d is negative", i, a)
		}
	}
}
