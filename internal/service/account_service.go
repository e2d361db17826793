package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// ReconciliationInfo is what the client shows before asking the user to
// confirm against a bank statement.
type ReconciliationInfo struct {
	ClearedBalance      money.Milliunit
	PendingClearedCount int64
}

// AccountService handles account reads.
type AccountService struct {
	reader *storage.Reader
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader *storage.Reader) *AccountService {
	return &AccountService{reader: reader}
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := s.reader.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, budget.ErrAccountNotFound
	}
	return acc, nil
}

// ListAccounts returns all accounts of a budget.
func (s *AccountService) ListAccounts(ctx context.Context, budgetID uuid.UUID) ([]*account.Account, error) {
	return s.reader.Accounts.ListByBudget(ctx, budgetID)
}

// GetReconciliationInfo returns the cleared balance to confirm against the
// bank and the number of Cleared rows a successful reconciliation would lock.
func (s *AccountService) GetReconciliationInfo(ctx context.Context, budgetID, accountID uuid.UUID) (*ReconciliationInfo, error) {
	acc, err := s.reader.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, budget.ErrAccountNotFound
	}

	count, err := s.reader.Transactions.CountCleared(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationInfo{
		ClearedBalance:      acc.ClearedBalance,
		PendingClearedCount: count,
	}, nil
}
