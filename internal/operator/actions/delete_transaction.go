package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// DeleteTransaction removes a transaction row, reverses its effect on the
// account's balance aggregates, and refreshes the affected month. Deleting one
// leg of a transfer deletes both legs.
type DeleteTransaction struct {
	BudgetID      uuid.UUID
	TransactionID uuid.UUID

	IAction
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
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

	affected := []budget.Month{existing.Month()}

	if err := a.deleteLeg(ctx, writer, existing); err != nil {
		return err
	}

	if existing.IsTransfer() {
		peer, err := writer.Transactions.FindByIDForUpdate(ctx, *existing.TransferTransactionID)
		if err != nil {
			return err
		}
		if peer != nil {
			if peer.Cleared == transaction.StateReconciled {
				return budget.ErrTransactionReconciled
			}
			if err := a.deleteLeg(ctx, writer, peer); err != nil {
				return err
			}
			affected = append(affected, peer.Month())
		}
	}

	return refreshMonths(ctx, writer, a.BudgetID, affected)
}

func (a *DeleteTransaction) deleteLeg(ctx context.Context, writer *storage.Writer, leg *transaction.Transaction) error {
	acc, err := writer.Accounts.FindByIDForUpdate(ctx, leg.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return budget.ErrAccountNotFound
	}
	if err := applyBalanceDelta(ctx, writer, acc, -leg.Amount, leg.Cleared); err != nil {
		return err
	}
	return writer.Transactions.Delete(ctx, leg.ID)
}
