package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

const (
	paymentGroupName     = "Credit Card Payments"
	startingBalancePayee = "Starting Balance"
)

// CreateAccount creates an account. A nonzero starting balance is also written
// as a cleared opening-balance transaction, categorized as income on asset
// accounts so the funds reach Ready-to-Assign; a liability's opening balance
// is existing debt and stays uncategorized. A credit account additionally gets
// its auto-generated payment category, under a "Credit Card Payments" group
// created on first need.
type CreateAccount struct {
	BudgetID        uuid.UUID
	Name            string
	Type            account.AccountType
	StartingBalance money.Milliunit
	Date            time.Time

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		BudgetID:       a.BudgetID,
		Name:           a.Name,
		Type:           a.Type,
		Balance:        a.StartingBalance,
		ClearedBalance: a.StartingBalance,
	})
	if err != nil {
		return err
	}
	a.CreatedID = id

	if a.Type.IsLiability() {
		if err := a.createPaymentCategory(ctx, writer, id); err != nil {
			return err
		}
	}

	if a.StartingBalance != 0 {
		return a.recordOpeningBalance(ctx, writer, id)
	}
	return nil
}

func (a *CreateAccount) createPaymentCategory(ctx context.Context, writer *storage.Writer, accountID uuid.UUID) error {
	group, err := writer.Categories.FindGroupByName(ctx, a.BudgetID, paymentGroupName)
	if err != nil {
		return err
	}
	groupID := uuid.Nil
	if group != nil {
		groupID = group.ID
	} else {
		groupID, err = writer.Categories.InsertGroup(ctx, &category.GroupCreate{
			BudgetID: a.BudgetID,
			Name:     paymentGroupName,
		})
		if err != nil {
			return err
		}
	}

	_, err = writer.Categories.Insert(ctx, &category.CategoryCreate{
		BudgetID:        a.BudgetID,
		GroupID:         groupID,
		Name:            a.Name,
		LinkedAccountID: &accountID,
	})
	return err
}

// recordOpeningBalance writes the starting balance into the register. The
// account row already carries the balance, so the transaction is inserted
// directly without a second balance adjustment.
func (a *CreateAccount) recordOpeningBalance(ctx context.Context, writer *storage.Writer, accountID uuid.UUID) error {
	date := a.Date
	if date.IsZero() {
		date = time.Now()
	}

	var categoryID *uuid.UUID
	if !a.Type.IsLiability() {
		income, err := writer.Categories.FindIncomeCategory(ctx, a.BudgetID)
		if err != nil {
			return err
		}
		if income != nil {
			categoryID = &income.ID
		}
	}

	_, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		BudgetID:   a.BudgetID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       date,
		Payee:      startingBalancePayee,
		Amount:     a.StartingBalance,
		Cleared:    transaction.StateCleared,
	})
	if err != nil {
		return err
	}
	return refreshMonths(ctx, writer, a.BudgetID, []budget.Month{budget.MonthOf(date)})
}
