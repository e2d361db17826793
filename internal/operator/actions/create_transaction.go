package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// CreateTransaction writes a transaction row, adjusts the account's balance
// aggregates, and refreshes the derived ledger state for the affected month,
// all in one unit of work. Spending on a credit account surfaces on the linked
// payment category through the refresh.
type CreateTransaction struct {
	BudgetID   uuid.UUID
	AccountID  uuid.UUID
	CategoryID *uuid.UUID
	Date       time.Time
	Payee      string
	Memo       string
	Amount     money.Milliunit
	Cleared    transaction.ClearedState
	Flag       string

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	// Rows are born Uncleared or Cleared; Reconciled is reached only through
	// the reconciliation workflow.
	if a.Cleared == transaction.StateReconciled {
		return budget.ErrTransactionReconciled
	}

	acc, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return budget.ErrAccountNotFound
	}

	if a.CategoryID != nil {
		cat, err := writer.Categories.FindByID(ctx, *a.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return budget.ErrCategoryNotFound
		}
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		BudgetID:   a.BudgetID,
		AccountID:  a.AccountID,
		CategoryID: a.CategoryID,
		Date:       a.Date,
		Payee:      a.Payee,
		Memo:       a.Memo,
		Amount:     a.Amount,
		Cleared:    a.Cleared,
		Flag:       a.Flag,
	})
	if err != nil {
		return err
	}
	a.CreatedID = id

	if err := applyBalanceDelta(ctx, writer, acc, a.Amount, a.Cleared); err != nil {
		return err
	}

	return refreshMonths(ctx, writer, a.BudgetID, []budget.Month{budget.MonthOf(a.Date)})
}
