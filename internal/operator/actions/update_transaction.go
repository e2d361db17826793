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

// UpdateTransaction rewrites a transaction's mutable fields, re-adjusts the
// account's balance aggregates by the amount difference, and refreshes the
// derived state of every affected month. A date edit across a month boundary
// refreshes both the old and the new month. The cleared state is owned by
// ToggleCleared and the reconciliation workflow, not by updates.
type UpdateTransaction struct {
	BudgetID      uuid.UUID
	TransactionID uuid.UUID
	CategoryID    *uuid.UUID
	Date          time.Time
	Payee         string
	Memo          string
	Amount        money.Milliunit
	Flag          string

	IAction
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
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

	categoryID := a.CategoryID
	if existing.IsTransfer() {
		// Transfer legs never carry a category; the pair stays off-budget.
		categoryID = nil
	}

	if categoryID != nil {
		cat, err := writer.Categories.FindByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return budget.ErrCategoryNotFound
		}
	}

	update := &transaction.TransactionUpdate{
		CategoryID:            categoryID,
		Date:                  a.Date,
		Payee:                 a.Payee,
		Memo:                  a.Memo,
		Amount:                a.Amount,
		Cleared:               existing.Cleared,
		TransferTransactionID: existing.TransferTransactionID,
		Flag:                  a.Flag,
	}
	if err := writer.Transactions.Update(ctx, existing.ID, update); err != nil {
		return err
	}

	acc, err := writer.Accounts.FindByIDForUpdate(ctx, existing.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return budget.ErrAccountNotFound
	}
	if err := applyBalanceDelta(ctx, writer, acc, a.Amount-existing.Amount, existing.Cleared); err != nil {
		return err
	}

	affected := []budget.Month{existing.Month(), budget.MonthOf(a.Date)}

	if existing.IsTransfer() {
		peerMonths, err := a.mirrorToPeer(ctx, writer, existing)
		if err != nil {
			return err
		}
		affected = append(affected, peerMonths...)
	}

	return refreshMonths(ctx, writer, a.BudgetID, affected)
}

// mirrorToPeer keeps the two legs of a transfer agreeing on amount and date:
// the peer takes the negated amount and the same date.
func (a *UpdateTransaction) mirrorToPeer(ctx context.Context, writer *storage.Writer, leg *transaction.Transaction) ([]budget.Month, error) {
	peer, err := writer.Transactions.FindByIDForUpdate(ctx, *leg.TransferTransactionID)
	if err != nil {
		return nil, err
	}
	if peer == nil {
		return nil, budget.ErrNotTransfer
	}
	if peer.Cleared == transaction.StateReconciled {
		return nil, budget.ErrTransactionReconciled
	}

	newPeerAmount := -a.Amount
	update := &transaction.TransactionUpdate{
		CategoryID:            nil,
		Date:                  a.Date,
		Payee:                 peer.Payee,
		Memo:                  peer.Memo,
		Amount:                newPeerAmount,
		Cleared:               peer.Cleared,
		TransferTransactionID: peer.TransferTransactionID,
		Flag:                  peer.Flag,
	}
	if err := writer.Transactions.Update(ctx, peer.ID, update); err != nil {
		return nil, err
	}

	peerAccount, err := writer.Accounts.FindByIDForUpdate(ctx, peer.AccountID)
	if err != nil {
		return nil, err
	}
	if peerAccount == nil {
		return nil, budget.ErrAccountNotFound
	}
	if err := applyBalanceDelta(ctx, writer, peerAccount, newPeerAmount-peer.Amount, peer.Cleared); err != nil {
		return nil, err
	}

	return []budget.Month{peer.Month(), budget.MonthOf(a.Date)}, nil
}
