package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// ToggleCleared flips a transaction between Uncleared and Cleared and moves
// its amount between the account's uncleared and cleared balance buckets.
// Reconciled rows are locked and reject the toggle.
type ToggleCleared struct {
	BudgetID      uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID

	IAction
}

func (a *ToggleCleared) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByIDForUpdate(ctx, a.TransactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return budget.ErrTransactionNotFound
	}
	if existing.Cleared == transaction.StateReconciled {
		return budget.ErrTransactionReconciled
	}

	newState := transaction.StateCleared
	if existing.Cleared == transaction.StateCleared {
		newState = transaction.StateUncleared
	}

	update := &transaction.TransactionUpdate{
		CategoryID:            existing.CategoryID,
		Date:                  existing.Date,
		Payee:                 existing.Payee,
		Memo:                  existing.Memo,
		Amount:                existing.Amount,
		Cleared:               newState,
		TransferTransactionID: existing.TransferTransactionID,
		Flag:                  existing.Flag,
	}
	if err := writer.Transactions.Update(ctx, existing.ID, update); err != nil {
		return err
	}

	// The balance adjustment follows the transaction's own account, not the
	// caller-supplied one, so a stale AccountID cannot touch another account.
	acc, err := writer.Accounts.FindByIDForUpdate(ctx, existing.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return budget.ErrAccountNotFound
	}

	// Total balance is unchanged; the amount just changes buckets.
	if newState == transaction.StateCleared {
		acc.UnclearedBalance -= existing.Amount
		acc.ClearedBalance += existing.Amount
	} else {
		acc.ClearedBalance -= existing.Amount
		acc.UnclearedBalance += existing.Amount
	}
	return writer.Accounts.UpdateBalances(ctx, acc.ID, acc.Balance, acc.ClearedBalance, acc.UnclearedBalance)
}
