package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

// ClearedState is the reconciliation lifecycle of a transaction. Reconciled is
// terminal; the mutation actions reject any change to a reconciled row.
type ClearedState int16

const (
	StateUncleared ClearedState = iota
	StateCleared
	StateReconciled
)

// Transaction represents a transaction record. Amount is signed milliunits:
// inflow positive, outflow negative. TransferTransactionID points at the peer
// leg when the row is one half of a transfer; transfer legs carry no category.
type Transaction struct {
	ID                    uuid.UUID       `db:"id"`
	BudgetID              uuid.UUID       `db:"budget_id"`
	AccountID             uuid.UUID       `db:"account_id"`
	CategoryID            *uuid.UUID      `db:"category_id"`
	Date                  time.Time       `db:"date"`
	Payee                 string          `db:"payee"`
	Memo                  string          `db:"memo"`
	Amount                money.Milliunit `db:"amount"`
	Cleared               ClearedState    `db:"cleared"`
	TransferTransactionID *uuid.UUID      `db:"transfer_transaction_id"`
	Flag                  string          `db:"flag"`
	CreatedAt             time.Time       `db:"created_at"`
}

// Month returns the calendar month the transaction is dated in.
func (t *Transaction) Month() budget.Month {
	return budget.MonthOf(t.Date)
}

// IsTransfer reports whether the row is one leg of a transfer pair.
func (t *Transaction) IsTransfer() bool {
	return t.TransferTransactionID != nil
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	BudgetID              uuid.UUID
	AccountID             uuid.UUID
	CategoryID            *uuid.UUID
	Date                  time.Time
	Payee                 string
	Memo                  string
	Amount                money.Milliunit
	Cleared               ClearedState
	TransferTransactionID *uuid.UUID
	Flag                  string
}

// TransactionUpdate carries the mutable fields of a transaction row.
type TransactionUpdate struct {
	CategoryID            *uuid.UUID
	Date                  time.Time
	Payee                 string
	Memo                  string
	Amount                money.Milliunit
	Cleared               ClearedState
	TransferTransactionID *uuid.UUID
	Flag                  string
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	BudgetID        *uuid.UUID
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionReader defines the read operations on the transactions table,
// including the aggregates the derived-state refresh and RTA calculator pull.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)

	// ActivityByCategory sums categorized transaction amounts per category for
	// one month. Transfer legs have no category and are naturally excluded.
	ActivityByCategory(ctx context.Context, budgetID uuid.UUID, month budget.Month) (map[uuid.UUID]money.Milliunit, error)
	// CardActivity sums categorized spending on one account for one month,
	// the basis of the linked payment category's activity.
	CardActivity(ctx context.Context, accountID uuid.UUID, month budget.Month) (money.Milliunit, error)
	// IncomeThrough sums inflow recorded against the income pseudo-category
	// from the beginning of history through the given month inclusive.
	IncomeThrough(ctx context.Context, categoryID uuid.UUID, through budget.Month) (money.Milliunit, error)
	// IncomeInMonth sums income pseudo-category inflow for a single month.
	IncomeInMonth(ctx context.Context, categoryID uuid.UUID, month budget.Month) (money.Milliunit, error)
	// CountCleared counts an account's Cleared (not yet Reconciled) rows.
	CountCleared(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// ITransactionWriter adds the transactional mutations.
type ITransactionWriter interface {
	ITransactionReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkClearedReconciled flips every Cleared row of the account to
	// Reconciled and returns the number of rows affected.
	MarkClearedReconciled(ctx context.Context, accountID uuid.UUID) (int64, error)
}
