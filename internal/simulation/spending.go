package simulation

import (
	"context"

	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var categories = []string{"Food", "Shopping", "Entertainment", "Travel", "Utilities"}

// RunMonthlyExpenses debits a random fraction of each primary account's
// balance and records a POS transaction for it. Accounts whose computed
// expense is non-positive, or no longer covered by the time the atomic
// unit re-reads the balance, are skipped.
func (e *Engine) RunMonthlyExpenses(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 {
			res.Skipped++
			continue
		}
		acct := u.Accounts[0]

		pct := e.cfg.ExpenseMinPercent + e.rng.Float64()*(e.cfg.ExpenseMaxPercent-e.cfg.ExpenseMinPercent)
		expense := decimal.NewFromInt(acct.Balance).
			Mul(decimal.NewFromFloat(pct)).
			Floor().
			IntPart()
		if expense <= 0 || expense > acct.Balance {
			res.Skipped++
			continue
		}

		if _, err := e.ledger.Debit(ctx, acct.ID, expense, models.ModePOS, "Monthly Expenses"); err != nil {
			e.log.Warn("expense debit skipped", zap.Uint("account", acct.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	e.log.Info("monthly expenses complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

// RunPeerSimulation sends a random transfer from a fraction of the
// population to a random distinct counterparty. A failed transfer
// (insufficient funds, missing account) skips the pair; it never aborts
// the batch.
func (e *Engine) RunPeerSimulation(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		return Result{}, err
	}
	res := e.peerTransfers(ctx, users)
	e.log.Info("peer simulation complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (e *Engine) peerTransfers(ctx context.Context, users []models.User) Result {
	var res Result
	for i, u := range users {
		if len(u.Accounts) == 0 {
			res.Skipped++
			continue
		}
		if e.rng.Float64() > e.cfg.TransferChance {
			res.Skipped++
			continue
		}

		j := e.rng.Intn(len(users))
		if j == i || len(users[j].Accounts) == 0 {
			res.Skipped++
			continue
		}

		amount := e.randAmount(e.cfg.TransferMin, e.cfg.TransferMax)
		category := categories[e.rng.Intn(len(categories))]
		if _, err := e.ledger.Transfer(ctx, u.Accounts[0].ID, users[j].Accounts[0].ID, amount, models.ModeUPI, category); err != nil {
			e.log.Debug("peer transfer skipped",
				zap.Uint("from", u.ID),
				zap.Uint("to", users[j].ID),
				zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	return res
}

// RunRealisticCycle chains the daily-life passes over one population
// snapshot: emergency top-ups for near-empty accounts, peer transfers,
// then employment-type balance drift.
func (e *Engine) RunRealisticCycle(ctx context.Context) (Result, error) {
	users, err := e.store.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.add(e.emergencyTopUps(ctx, users))
	res.add(e.peerTransfers(ctx, users))
	res.add(e.balanceDrift(ctx, users))
	e.log.Info("realistic cycle complete", zap.Int("processed", res.Processed), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (e *Engine) emergencyTopUps(ctx context.Context, users []models.User) Result {
	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 || u.Accounts[0].Balance >= e.cfg.EmergencyFloor {
			res.Skipped++
			continue
		}
		amount := e.randAmount(e.cfg.EmergencyMin, e.cfg.EmergencyMax)
		if _, err := e.ledger.AdjustBalance(ctx, u.Accounts[0].ID, amount, false); err != nil {
			e.log.Warn("emergency top-up failed", zap.Uint("user", u.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	return res
}

// balanceDrift nudges well-funded accounts up or down at random. Business
// accounts drift harder. Debits are floored at zero so drift can never
// overdraw an account.
func (e *Engine) balanceDrift(ctx context.Context, users []models.User) Result {
	var res Result
	for _, u := range users {
		if len(u.Accounts) == 0 {
			res.Skipped++
			continue
		}
		acct := u.Accounts[0]

		amount := e.randAmount(e.cfg.DriftMin, e.cfg.DriftMax)
		switch {
		case u.EmploymentType == models.EmploymentBusiness && acct.Balance > e.cfg.BusinessFloor:
			amount = decimal.NewFromInt(amount).
				Mul(decimal.NewFromFloat(e.cfg.DriftBusinessFactor)).
				IntPart()
		case u.EmploymentType == models.EmploymentEmployed && acct.Balance > e.cfg.EmployedFloor:
			// drift unscaled
		default:
			res.Skipped++
			continue
		}

		if e.rng.Float64() > 0.5 {
			amount = -amount
		}
		if _, err := e.ledger.AdjustBalance(ctx, acct.ID, amount, true); err != nil {
			e.log.Warn("balance drift failed", zap.Uint("account", acct.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Processed++
	}
	return res
}
