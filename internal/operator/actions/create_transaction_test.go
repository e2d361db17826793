package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func TestCreateTransaction_OutflowUpdatesBalancesAndLedger(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Payee:      "Market",
		Amount:     -20000,
		Cleared:    transaction.StateUncleared,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))
	assert.NotEqual(t, uuid.Nil, action.CreatedID)

	created, err := f.store.Transactions.FindByID(context.Background(), action.CreatedID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, money.Milliunit(-20000), created.Amount)

	acc, err := f.store.Accounts.FindByID(context.Background(), f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-20000), acc.Balance)
	assert.Equal(t, money.Milliunit(-20000), acc.UnclearedBalance)
	assert.Equal(t, money.Milliunit(0), acc.ClearedBalance)

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, money.Milliunit(-20000), entry.Activity)
	assert.Equal(t, money.Milliunit(-20000), entry.Available)
}

func TestCreateTransaction_ClearedGoesToClearedBucket(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Amount:     -15000,
		Cleared:    transaction.StateCleared,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	acc, err := f.store.Accounts.FindByID(context.Background(), f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-15000), acc.ClearedBalance)
	assert.Equal(t, money.Milliunit(0), acc.UnclearedBalance)
}

func TestCreateTransaction_CardSpendingFundsPaymentCategory(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.creditID,
		CategoryID: &f.groceriesID,
		Date:       date("2025-03-10"),
		Amount:     -30000,
		Cleared:    transaction.StateUncleared,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	// The spending category takes the outflow.
	groceries, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-30000), groceries.Activity)

	// The linked payment category mirrors it as money set aside for the payment.
	payment, err := f.store.Ledger.Get(context.Background(), f.paymentCategoryID, budgetMonth("2025-03"))
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, money.Milliunit(30000), payment.Activity)
	assert.Equal(t, money.Milliunit(30000), payment.Available)
}

func TestCreateTransaction_IncomeSkipsLedger(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &f.incomeCategoryID,
		Date:       date("2025-03-01"),
		Payee:      "Employer",
		Amount:     2000000,
		Cleared:    transaction.StateCleared,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	// Income feeds Ready-to-Assign, never a ledger row.
	entry, err := f.store.Ledger.Get(context.Background(), f.incomeCategoryID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestCreateTransaction_RejectsReconciledInput(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:  f.budgetID,
		AccountID: f.checkingID,
		Date:      date("2025-03-10"),
		Amount:    -1000,
		Cleared:   transaction.StateReconciled,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrTransactionReconciled)
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	f := newFixture()

	action := &CreateTransaction{
		BudgetID:  f.budgetID,
		AccountID: mustUUID(),
		Date:      date("2025-03-10"),
		Amount:    -1000,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrAccountNotFound)
}

func TestCreateTransaction_UnknownCategory(t *testing.T) {
	f := newFixture()
	unknown := mustUUID()

	action := &CreateTransaction{
		BudgetID:   f.budgetID,
		AccountID:  f.checkingID,
		CategoryID: &unknown,
		Date:       date("2025-03-10"),
		Amount:     -1000,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrCategoryNotFound)
}
