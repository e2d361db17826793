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

// CreateTransfer creates the two legs of a transfer between the user's own
// accounts: an outflow on the source and an inflow on the destination, linked
// to each other, sharing date and amount, with no category. Transfers move
// real money but never touch the budget.
type CreateTransfer struct {
	BudgetID      uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Date          time.Time
	Memo          string
	Amount        money.Milliunit
	Cleared       transaction.ClearedState

	// Leg IDs are populated on success.
	FromTransactionID uuid.UUID
	ToTransactionID   uuid.UUID

	IAction
}

func (a *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount <= 0 {
		return budget.ErrNonPositiveAmount
	}
	if a.Cleared == transaction.StateReconciled {
		return budget.ErrTransactionReconciled
	}

	fromAccount, err := writer.Accounts.FindByIDForUpdate(ctx, a.FromAccountID)
	if err != nil {
		return err
	}
	if fromAccount == nil {
		return budget.ErrAccountNotFound
	}
	toAccount, err := writer.Accounts.FindByIDForUpdate(ctx, a.ToAccountID)
	if err != nil {
		return err
	}
	if toAccount == nil {
		return budget.ErrAccountNotFound
	}

	fromID, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		BudgetID:  a.BudgetID,
		AccountID: a.FromAccountID,
		Date:      a.Date,
		Payee:     "Transfer : " + toAccount.Name,
		Memo:      a.Memo,
		Amount:    -a.Amount,
		Cleared:   a.Cleared,
	})
	if err != nil {
		return err
	}
	toID, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		BudgetID:              a.BudgetID,
		AccountID:             a.ToAccountID,
		Date:                  a.Date,
		Payee:                 "Transfer : " + fromAccount.Name,
		Memo:                  a.Memo,
		Amount:                a.Amount,
		Cleared:               a.Cleared,
		TransferTransactionID: &fromID,
	})
	if err != nil {
		return err
	}

	// Back-link the first leg now that the peer exists.
	fromLeg, err := writer.Transactions.FindByIDForUpdate(ctx, fromID)
	if err != nil {
		return err
	}
	if fromLeg == nil {
		return budget.ErrTransactionNotFound
	}
	if err := writer.Transactions.Update(ctx, fromID, &transaction.TransactionUpdate{
		Date:                  fromLeg.Date,
		Payee:                 fromLeg.Payee,
		Memo:                  fromLeg.Memo,
		Amount:                fromLeg.Amount,
		Cleared:               fromLeg.Cleared,
		TransferTransactionID: &toID,
	}); err != nil {
		return err
	}

	if err := applyBalanceDelta(ctx, writer, fromAccount, -a.Amount, a.Cleared); err != nil {
		return err
	}
	if err := applyBalanceDelta(ctx, writer, toAccount, a.Amount, a.Cleared); err != nil {
		return err
	}

	a.FromTransactionID = fromID
	a.ToTransactionID = toID
	return nil
}
