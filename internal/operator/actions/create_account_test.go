package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func TestCreateAccount_StartingBalanceIsCleared(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID:        f.budgetID,
		Name:            "Savings",
		Type:            account.AccountTypeSavings,
		StartingBalance: 1000000,
		Date:            date("2025-03-01"),
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))
	assert.NotEqual(t, uuid.Nil, action.CreatedID)

	acc, err := f.store.Accounts.FindByID(context.Background(), action.CreatedID)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, money.Milliunit(1000000), acc.Balance)
	assert.Equal(t, money.Milliunit(1000000), acc.ClearedBalance)
	assert.Equal(t, money.Milliunit(0), acc.UnclearedBalance)
}

func TestCreateAccount_OpeningBalanceFeedsIncome(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID:        f.budgetID,
		Name:            "Savings",
		Type:            account.AccountTypeSavings,
		StartingBalance: 1000000,
		Date:            date("2025-03-01"),
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	rows := f.store.Transactions.All()
	require.Len(t, rows, 1)
	opening := rows[0]
	assert.Equal(t, action.CreatedID, opening.AccountID)
	assert.Equal(t, "Starting Balance", opening.Payee)
	assert.Equal(t, money.Milliunit(1000000), opening.Amount)
	assert.Equal(t, transaction.StateCleared, opening.Cleared)
	require.NotNil(t, opening.CategoryID)
	assert.Equal(t, f.incomeCategoryID, *opening.CategoryID)

	income, err := f.store.Transactions.IncomeInMonth(context.Background(), f.incomeCategoryID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(1000000), income)
}

func TestCreateAccount_CreditOpeningBalanceStaysUncategorized(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID:        f.budgetID,
		Name:            "Second Card",
		Type:            account.AccountTypeCredit,
		StartingBalance: -250000,
		Date:            date("2025-03-01"),
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	rows := f.store.Transactions.All()
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CategoryID)

	// Existing debt is not income; nothing lands in the income category.
	income, err := f.store.Transactions.IncomeInMonth(context.Background(), f.incomeCategoryID, budgetMonth("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(0), income)
}

func TestCreateAccount_ZeroBalanceWritesNoTransaction(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID: f.budgetID,
		Name:     "Wallet",
		Type:     account.AccountTypeCash,
		Date:     date("2025-03-01"),
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))
	assert.Empty(t, f.store.Transactions.All())
}

func TestCreateAccount_CreditGetsPaymentCategory(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID: f.budgetID,
		Name:     "Second Card",
		Type:     account.AccountTypeCredit,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	payment, err := f.store.Categories.FindPaymentCategory(context.Background(), action.CreatedID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, "Second Card", payment.Name)
	assert.True(t, payment.IsPayment())

	// The fixture already has a "Credit Card Payments" group; no duplicate.
	group, err := f.store.Categories.FindGroupByName(context.Background(), f.budgetID, "Credit Card Payments")
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, group.ID, payment.GroupID)
}

func TestCreateAccount_ChecksDoNotGetPaymentCategory(t *testing.T) {
	f := newFixture()

	action := &CreateAccount{
		BudgetID: f.budgetID,
		Name:     "Wallet",
		Type:     account.AccountTypeCash,
	}
	require.NoError(t, action.Perform(context.Background(), f.store.Writer()))

	payment, err := f.store.Categories.FindPaymentCategory(context.Background(), action.CreatedID)
	require.NoError(t, err)
	assert.Nil(t, payment)
}
