package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// reconcileTolerance is 0.01 currency units. Bank feeds round to cents, so a
// sub-cent disagreement still counts as a match.
const reconcileTolerance = money.Milliunit(10)

// ReconcileResult is a first-class outcome, not an error: a mismatch is an
// expected, recoverable state that the user resolves and retries.
type ReconcileResult struct {
	Mismatch        bool
	Difference      money.Milliunit
	ReconciledCount int64
}

// ReconcileAccount compares the user-supplied bank balance against the
// account's cleared balance. Within tolerance, every Cleared transaction on
// the account is locked into the terminal Reconciled state; otherwise nothing
// mutates and the signed difference is reported back.
type ReconcileAccount struct {
	BudgetID    uuid.UUID
	AccountID   uuid.UUID
	BankBalance money.Milliunit

	// Result is populated on success.
	Result ReconcileResult

	IAction
}

func (a *ReconcileAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return budget.ErrAccountNotFound
	}

	difference := a.BankBalance - acc.ClearedBalance
	if money.Abs(difference) > reconcileTolerance {
		a.Result = ReconcileResult{Mismatch: true, Difference: difference}
		return nil
	}

	count, err := writer.Transactions.MarkClearedReconciled(ctx, a.AccountID)
	if err != nil {
		return err
	}
	a.Result = ReconcileResult{ReconciledCount: count}
	return nil
}
