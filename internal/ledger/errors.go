package ledger

import "errors"

var (
	// ErrInvalidAmount rejects non-positive amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds rejects a debit that would drive a balance
	// negative when the floor-at-zero policy is not in effect.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameAccount rejects a transfer whose source and destination match.
	ErrSameAccount = errors.New("source and destination accounts are the same")
	// ErrMissingAccount rejects a record with neither account reference set.
	ErrMissingAccount = errors.New("at least one account reference is required")
)
