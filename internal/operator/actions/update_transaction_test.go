package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func TestUpdateTransaction_AmountChange(t *testing.T) {
	f := newFixture()
	create := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Amount:     -20000,
		Cleared:    transaction.StateUncleared,
	}
	require.NoError(t, create.Perform(context.Background(), f.store.Writer()))

	update := &UpdateTransaction{
		BudgetID:      f.budgetID,
		TransactionID: create.CreatedID,
		CategoryID:    &f.groceriesID,
		Date:          date("2025-03-10"),
		Amount:        -35000,
	}
	require.NoError(t, update.Perform(context.Background(), f.store.Writer()))

	acc, err := f.store.Accounts.FindByID(context.Background(), f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-35000), acc.Balance)
	assert.Equal(t, money.Milliunit(-35000), acc.UnclearedBalance)

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-35000), entry.Activity)
	assert.Equal(t, money.Milliunit(-35000), entry.Available)
}

func TestUpdateTransaction_DateMoveAcrossMonths(t *testing.T) {
	f := newFixture()
	create := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Amount:     -20000,
		Cleared:    transaction.StateUncleared,
	}
	require.NoError(t, create.Perform(context.Background(), f.store.Writer()))

	update := &UpdateTransaction{
		BudgetID:      f.budgetID,
		TransactionID: create.CreatedID,
		CategoryID:    &f.groceriesID,
		Date:          date("2025-04-02"),
		Amount:        -20000,
	}
	require.NoError(t, update.Perform(context.Background(), f.store.Writer()))

	// March's activity is gone; the row is a ghost and vanishes.
	march, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Nil(t, march)

	april, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-04"))
	require.NoError(t, err)
	require.NotNil(t, april)
	assert.Equal(t, money.Milliunit(-20000), april.Activity)
	assert.Equal(t, money.Milliunit(-20000), april.Available)
}

func TestUpdateTransaction_RejectsReconciled(t *testing.T) {
	f := newFixture()
	create := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Amount:     -20000,
		Cleared:    transaction.StateCleared,
	}
	require.NoError(t, create.Perform(context.Background(), f.store.Writer()))
	_, err := f.store.Transactions.MarkClearedReconciled(context.Background(), f.checkingID)
	require.NoError(t, err)

	update := &UpdateTransaction{
		BudgetID:      f.budgetID,
		TransactionID: create.CreatedID,
		Date:          date("2025-03-11"),
		Amount:        -10000,
	}
	err = update.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrTransactionReconciled)
}

func TestUpdateTransaction_TransferLegMirrorsPeer(t *testing.T) {
	f := newFixture()
	transfer := &CreateTransfer{
		BudgetID:      f.budgetID,
		FromAccountID: f.checkingID,
		ToAccountID:   f.creditID,
		Date:          date("2025-03-10"),
		Amount:        50000,
		Cleared:       transaction.StateUncleared,
	}
	require.NoError(t, transfer.Perform(context.Background(), f.store.Writer()))

	update := &UpdateTransaction{
		BudgetID:      f.budgetID,
		TransactionID: transfer.FromTransactionID,
		CategoryID:    &f.groceriesID, // ignored on transfer legs
		Date:          date("2025-03-15"),
		Amount:        -60000,
	}
	require.NoError(t, update.Perform(context.Background(), f.store.Writer()))

	fromLeg, err := f.store.Transactions.FindByID(context.Background(), transfer.FromTransactionID)
	require.NoError(t, err)
	assert.Nil(t, fromLeg.CategoryID)
	assert.Equal(t, money.Milliunit(-60000), fromLeg.Amount)

	toLeg, err := f.store.Transactions.FindByID(context.Background(), transfer.ToTransactionID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(60000), toLeg.Amount)
	assert.Equal(t, date("2025-03-15"), toLeg.Date)

	fromAcc, err := f.store.Accounts.FindByID(context.Background(), f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-60000), fromAcc.Balance)
	toAcc, err := f.store.Accounts.FindByID(context.Background(), f.creditID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(60000), toAcc.Balance)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	f := newFixture()

	update := &UpdateTransaction{
		BudgetID:      f.budgetID,
		TransactionID: mustUUID(),
		Date:          date("2025-03-10"),
		Amount:        -1000,
	}
	err := update.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrTransactionNotFound)
}
