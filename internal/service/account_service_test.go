package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func TestGetAccount(t *testing.T) {
	f := newBudgetFixture()

	svc := NewAccountService(f.store.Reader())
	acc, err := svc.GetAccount(context.Background(), f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", acc.Name)
}

func TestGetAccount_NotFound(t *testing.T) {
	f := newBudgetFixture()

	svc := NewAccountService(f.store.Reader())
	_, err := svc.GetAccount(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, budget.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	f := newBudgetFixture()

	svc := NewAccountService(f.store.Reader())
	accounts, err := svc.ListAccounts(context.Background(), f.budgetID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestGetReconciliationInfo(t *testing.T) {
	f := newBudgetFixture()
	f.store.Accounts.Seed(&account.Account{
		ID:             f.checkingID,
		BudgetID:       f.budgetID,
		Name:           "Checking",
		Type:           account.AccountTypeChecking,
		Balance:        -50000,
		ClearedBalance: -50000,
	})
	for i := 0; i < 2; i++ {
		f.store.Transactions.Seed(&transaction.Transaction{
			ID:        uuid.Must(uuid.NewV4()),
			BudgetID:  f.budgetID,
			AccountID: f.checkingID,
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Amount:    -25000,
			Cleared:   transaction.StateCleared,
		})
	}

	svc := NewAccountService(f.store.Reader())
	info, err := svc.GetReconciliationInfo(context.Background(), f.budgetID, f.checkingID)
	require.NoError(t, err)
	assert.Equal(t, money.Milliunit(-50000), info.ClearedBalance)
	assert.Equal(t, int64(2), info.PendingClearedCount)
}

func TestGetReconciliationInfo_NotFound(t *testing.T) {
	f := newBudgetFixture()

	svc := NewAccountService(f.store.Reader())
	_, err := svc.GetReconciliationInfo(context.Background(), f.budgetID, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, budget.ErrAccountNotFound)
}
