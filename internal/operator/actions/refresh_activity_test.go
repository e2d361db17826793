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

func TestRefreshActivity_Idempotent(t *testing.T) {
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

	refresh := &RefreshActivity{
		BudgetID: f.budgetID,
		Months:   []budget.Month{budgetMonth("2025-03")},
	}
	require.NoError(t, refresh.Perform(context.Background(), f.store.Writer()))
	require.NoError(t, refresh.Perform(context.Background(), f.store.Writer()))

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, money.Milliunit(-20000), entry.Activity)
	assert.Equal(t, money.Milliunit(-20000), entry.Available)
}

func TestRefreshActivity_NegativeCarriesForwardUnchanged(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 10000, -30000, -20000)
	f.seedEntry(f.groceriesID, "2025-04", 0, 0, -20000)

	refresh := &RefreshActivity{
		BudgetID: f.budgetID,
		Months:   []budget.Month{budgetMonth("2025-04")},
	}
	require.NoError(t, refresh.Perform(context.Background(), f.store.Writer()))

	// An overspent month passes its full negative through to the next.
	april, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-04"))
	require.NoError(t, err)
	require.NotNil(t, april)
	assert.Equal(t, money.Milliunit(-20000), april.Available)
}

func TestRefreshActivity_GapMonthStaysSparse(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-01", 50000, 0, 50000)

	refresh := &RefreshActivity{
		BudgetID: f.budgetID,
		Months:   []budget.Month{budgetMonth("2025-02")},
	}
	require.NoError(t, refresh.Perform(context.Background(), f.store.Writer()))

	// Nothing happened in February; no row materializes.
	feb, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-02"))
	require.NoError(t, err)
	assert.Nil(t, feb)
}
