package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

func TestUpdateAssignment_CreatesRow(t *testing.T) {
	f := newFixture()

	action := &UpdateAssignment{
		BudgetID:   f.budgetID,
		CategoryID: f.groceriesID,
		Month:      budgetMonth("2025-03"),
		Assigned:   50000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, money.Milliunit(50000), entry.Assigned)
	assert.Equal(t, money.Milliunit(50000), entry.Available)
}

func TestUpdateAssignment_SeedsCarryover(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-01", 30000, -10000, 20000)

	// No row for February or March; March's fresh row starts from January's
	// available.
	action := &UpdateAssignment{
		BudgetID:   f.budgetID,
		CategoryID: f.groceriesID,
		Month:      budgetMonth("2025-03"),
		Assigned:   5000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(25000), entry.Available)
}

func TestUpdateAssignment_ReassignmentShiftsLaterMonths(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 1200000, 0, 1200000)
	f.seedEntry(f.groceriesID, "2025-04", 0, -600000, 600000)

	// Dropping March from 1200 to 900 shifts April's available by -300.
	action := &UpdateAssignment{
		BudgetID:   f.budgetID,
		CategoryID: f.groceriesID,
		Month:      budgetMonth("2025-03"),
		Assigned:   900000,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	march, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(900000), march.Assigned)
	assert.Equal(t, money.Milliunit(900000), march.Available)

	april, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-04"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(300000), april.Available)
}

func TestUpdateAssignment_ZeroingGhostRow(t *testing.T) {
	f := newFixture()
	f.seedEntry(f.groceriesID, "2025-03", 40000, 0, 40000)

	action := &UpdateAssignment{
		BudgetID:   f.budgetID,
		CategoryID: f.groceriesID,
		Month:      budgetMonth("2025-03"),
		Assigned:   0,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	entry, err := f.store.Ledger.Get(context.Background(), f.groceriesID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Equal(t, 0, f.store.Ledger.Len())
}

func TestUpdateAssignment_UnknownCategory(t *testing.T) {
	f := newFixture()

	action := &UpdateAssignment{
		BudgetID:   f.budgetID,
		CategoryID: mustUUID(),
		Month:      budgetMonth("2025-03"),
		Assigned:   10000,
	}
	err := action.Perform(context.Background(), f.store.Writer())
	assert.ErrorIs(t, err, budget.ErrCategoryNotFound)
}
