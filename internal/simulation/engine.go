// Package simulation applies economic mutation policies across the whole
// user population: salary credits, EMI repayments, business revenue,
// monthly expenses and simulated peer transfers. Batches iterate entities
// sequentially with per-entity isolation: one user's failure is logged,
// counted and skipped, never propagated.
package simulation

import (
	"context"
	"math/rand"

	"github.com/dasakash26/Banking-Simulation/internal/ledger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result aggregates a batch run. Processed counts entities whose mutation
// committed; Skipped counts entities passed over, whether by policy
// predicate, missing data or individual failure.
type Result struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

func (r *Result) add(other Result) {
	r.Processed += other.Processed
	r.Skipped += other.Skipped
}

type Engine struct {
	store  store.Store
	ledger *ledger.Service
	cfg    Config
	rng    *rand.Rand
	log    *zap.Logger
}

// NewEngine wires the batch policies. The rng is the only source of
// randomness for simulation parameters, so a seeded generator makes a
// whole run deterministic.
func NewEngine(st store.Store, svc *ledger.Service, cfg Config, rng *rand.Rand, log *zap.Logger) *Engine {
	return &Engine{store: st, ledger: svc, cfg: cfg, rng: rng, log: log}
}

// RunIncomeCycle credits every employed user's income figure to their
// primary account.
func (e *Engine) RunIncomeCycle(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{EmploymentType: models.EmploymentEmployed})
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 || u.Income <= 0 {
			res.Skipped++
			continue
		}
		if _, err := e.ledger.AdjustBalance(ctx, u.Accounts[0].ID, u.Income, false); err != nil {
			e.log.Warn("income credit failed", zap.Uint("user", u.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	e.log.Info("income cycle complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

// RunEMICycle repays each user's loans from their primary account. Each
// loan settles independently in its own atomic unit, so one loan's failure
// cannot roll back another's repayment.
func (e *Engine) RunEMICycle(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 || len(u.Loans) == 0 {
			res.Skipped++
			continue
		}
		if err := e.repayLoans(ctx, u.Accounts[0].ID, u.Loans); err != nil {
			e.log.Warn("emi repayment failed", zap.Uint("user", u.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	e.log.Info("emi cycle complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (e *Engine) repayLoans(ctx context.Context, accountID uint, loans []models.Loan) error {
	for _, loan := range loans {
		loanID := loan.ID
		err := e.store.RunAtomic(ctx, func(st store.Store) error {
			acct, err := st.GetAccount(ctx, accountID)
			if err != nil {
				return err
			}
			l, err := st.GetLoan(ctx, loanID)
			if err != nil {
				return err
			}
			// Pay the EMI, capped by both the available balance and the
			// remaining debt. Neither may end up negative.
			debit := l.EMI
			if acct.Balance < debit {
				debit = acct.Balance
			}
			if l.RemainingAmount < debit {
				debit = l.RemainingAmount
			}
			if debit <= 0 {
				return nil
			}
			if err := st.UpdateAccountBalance(ctx, acct.ID, acct.Balance-debit); err != nil {
				return err
			}
			return st.UpdateLoanRemaining(ctx, loanID, l.RemainingAmount-debit)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RunRevenueGeneration tops business users' primary accounts back up to a
// daily-equivalent income threshold.
func (e *Engine) RunRevenueGeneration(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{EmploymentType: models.EmploymentBusiness})
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 || u.Income <= 0 {
			res.Skipped++
			continue
		}
		threshold := dailyIncome(u.Income)
		accountID := u.Accounts[0].ID
		err := e.store.RunAtomic(ctx, func(st store.Store) error {
			acct, err := st.GetAccount(ctx, accountID)
			if err != nil {
				return err
			}
			if acct.Balance >= threshold {
				return nil
			}
			return st.UpdateAccountBalance(ctx, acct.ID, threshold)
		})
		if err != nil {
			e.log.Warn("revenue generation failed", zap.Uint("user", u.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	e.log.Info("revenue generation complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

// dailyIncome derives the source's daily-equivalent threshold from an
// annual income figure, rounded up to a whole minor unit.
func dailyIncome(income int64) int64 {
	return decimal.NewFromInt(income).
		Div(decimal.NewFromInt(30 * 365)).
		Ceil().
		IntPart()
}

func (e *Engine) randAmount(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + e.rng.Int63n(max-min)
}
