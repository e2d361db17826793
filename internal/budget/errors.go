package budget

import "errors"

// Domain errors surfaced unchanged to the API layer, which maps them to HTTP
// statuses. Reconciliation mismatch is deliberately not here: it is an expected
// result value, not a failure.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrSameCategory      = errors.New("source and target category are the same")
	ErrNotTransfer       = errors.New("transaction is not a transfer leg")

	// ErrTransactionReconciled marks a mutation attempt on a reconciled
	// transaction. Distinct from plain validation so callers can present the
	// row as locked rather than the input as invalid.
	ErrTransactionReconciled = errors.New("transaction is reconciled and locked")
)
