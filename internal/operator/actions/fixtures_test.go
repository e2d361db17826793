package actions

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage/storagetest"
)

// fixture is a seeded in-memory budget: a checking account, a credit card with
// its payment category, an income category, and two spending categories.
type fixture struct {
	store *storagetest.Store

	budgetID uuid.UUID

	checkingID uuid.UUID
	creditID   uuid.UUID

	incomeCategoryID  uuid.UUID
	groceriesID       uuid.UUID
	diningID          uuid.UUID
	paymentCategoryID uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:             storagetest.NewStore(),
		budgetID:          uuid.Must(uuid.NewV4()),
		checkingID:        uuid.Must(uuid.NewV4()),
		creditID:          uuid.Must(uuid.NewV4()),
		incomeCategoryID:  uuid.Must(uuid.NewV4()),
		groceriesID:       uuid.Must(uuid.NewV4()),
		diningID:          uuid.Must(uuid.NewV4()),
		paymentCategoryID: uuid.Must(uuid.NewV4()),
	}

	f.store.Accounts.Seed(&account.Account{
		ID:       f.checkingID,
		BudgetID: f.budgetID,
		Name:     "Checking",
		Type:     account.AccountTypeChecking,
	})
	f.store.Accounts.Seed(&account.Account{
		ID:       f.creditID,
		BudgetID: f.budgetID,
		Name:     "Card",
		Type:     account.AccountTypeCredit,
	})

	incomeGroupID := uuid.Must(uuid.NewV4())
	spendingGroupID := uuid.Must(uuid.NewV4())
	paymentsGroupID := uuid.Must(uuid.NewV4())
	f.store.Categories.SeedGroup(&category.Group{
		ID: incomeGroupID, BudgetID: f.budgetID, Name: "Income", IsIncome: true,
	})
	f.store.Categories.SeedGroup(&category.Group{
		ID: spendingGroupID, BudgetID: f.budgetID, Name: "Everyday", Sort: 1,
	})
	f.store.Categories.SeedGroup(&category.Group{
		ID: paymentsGroupID, BudgetID: f.budgetID, Name: "Credit Card Payments", Sort: 2,
	})

	f.store.Categories.SeedCategory(&category.Category{
		ID: f.incomeCategoryID, BudgetID: f.budgetID, GroupID: incomeGroupID, Name: "Ready to Assign",
	})
	f.store.Categories.SeedCategory(&category.Category{
		ID: f.groceriesID, BudgetID: f.budgetID, GroupID: spendingGroupID, Name: "Groceries",
	})
	f.store.Categories.SeedCategory(&category.Category{
		ID: f.diningID, BudgetID: f.budgetID, GroupID: spendingGroupID, Name: "Dining", Sort: 1,
	})
	f.store.Categories.SeedCategory(&category.Category{
		ID: f.paymentCategoryID, BudgetID: f.budgetID, GroupID: paymentsGroupID,
		Name: "Card", LinkedAccountID: &f.creditID,
	})

	return f
}

func (f *fixture) seedEntry(categoryID uuid.UUID, month string, assigned, activity, available money.Milliunit) {
	f.store.Ledger.Seed(&ledger.Entry{
		BudgetID:   f.budgetID,
		CategoryID: categoryID,
		Month:      budgetMonth(month),
		Assigned:   assigned,
		Activity:   activity,
		Available:  available,
	})
}

func budgetMonth(s string) budget.Month {
	return budget.Month(s)
}

func mustUUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
