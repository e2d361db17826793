package service

import (
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// Service holds the read-side services. All writes go through the operator;
// these only query.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Budget      *BudgetService
}

// NewService creates a new Service backed by the storage's shared reader.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Account:     NewAccountService(store.Reader),
		Transaction: NewTransactionService(store.Reader),
		Budget:      NewBudgetService(store.Reader),
	}
}
