package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

func TestMoveMoney_ZeroSum(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 100000, -20000, 80000)
	f.seedEntry(f.diningID, "2025-03", 50000, 0, 50000)

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.diningID,
		Month:            budgetMonth("2025-03"),
		Amount:           30000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	source, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	target, err := f.store.Ledger.Get(context.Background(), f.diningID, budgetMonth("2025-03"))
	require.NoError(t, err)

	assert.Equal(t, money.Milliunit(70000), source.Assigned)
	assert.Equal(t, money.Milliunit(50000), source.Available)
	assert.Equal(t, money.Milliunit(80000), target.Assigned)
	assert.Equal(t, money.Milliunit(80000), target.Available)

	// The month's total assigned is unchanged.
	assert.Equal(t, money.Milliunit(150000), source.Assigned+target.Assigned)
}

func TestMoveMoney_CascadesToLaterMonths(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 100000, 0, 100000)
	f.seedEntry(f.groceriesID, "2025-04", 0, -40000, 60000)
	f.seedEntry(f.diningID, "2025-03", 0, 0, 10000)
	f.seedEntry(f.diningID, "2025-05", 20000, 0, 30000)

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.diningID,
		Month:            budgetMonth("2025-03"),
		Amount:           25000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	laterSource, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-04"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(35000), laterSource.Available)

	laterTarget, err := f.store.Ledger.Get(context.Background(), f.diningID, budgetMonth("2025-05"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(55000), laterTarget.Available)
}

func TestMoveMoney_SourceMayGoNegative(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 10000, 0, 10000)

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.diningID,
		Month:            budgetMonth("2025-03"),
		Amount:           25000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	source, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-15000), source.Assigned)
	assert.Equal(t, money.Milliunit(-15000), source.Available)
}

func TestMoveMoney_CreatesTargetRow(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 50000, 0, 50000)

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.diningID,
		Month:            budgetMonth("2025-03"),
		Amount:           20000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	target, err := f.store.Ledger.Get(context.Background(), f.diningID, budgetMonth("2025-03"))
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, money.Milliunit(20000), target.Assigned)
	assert.Equal(t, money.Milliunit(20000), target.Available)
}

func TestMoveMoney_GhostRowDeleted(t *testing.T) {
	f := newFixture()
	// Moving everything away leaves the source all-zero; the row must vanish.
	f.seedEntry(f.groceriesID, "2025-03", 20000, 0, 20000)

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.diningID,
		Month:            budgetMonth("2025-03"),
		Amount:           20000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	source, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Nil(t, source)
}

func TestMoveMoney_NonPositiveAmount(t *testing.T) {
	f := newFixture()

	for _, amount := range []money.Milliunit{0, -1000} {
		action := &MoveMoney{
			BudgetID:         f.budgetID,
			SourceCategoryID: f.groceriesID,
			TargetCategoryID: f.diningID,
			Month:            budgetMonth("2025-03"),
			Amount:           amount,
		}
		err := action.Perform(context.Background(), f.store.Writer())
		assert.ErrorIs(t, err, budget.ErrNonPositiveAmount)
	}
}

func TestMoveMoney_SameCategory(t *testing.T) {
	f := newFixture()

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: f.groceriesID,
		Month:            budgetMonth("2025-03"),
		Amount:           10000,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrSameCategory)
}

func TestMoveMoney_UnknownCategory(t *testing.T) {
	f := newFixture()

	action := &MoveMoney{
		BudgetID:         f.budgetID,
		SourceCategoryID: f.groceriesID,
		TargetCategoryID: mustUUID(),
		Month:            budgetMonth("2025-03"),
		Amount:           10000,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrCategoryNotFound)
}
