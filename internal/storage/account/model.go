package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/money"
)

// AccountType is the stored account type.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCash     AccountType = "cash"
	AccountTypeCredit   AccountType = "credit"
	AccountTypeTracking AccountType = "tracking"
)

// IsLiability reports whether spending on this account is tracked as card debt
// rather than an immediate cash outflow.
func (t AccountType) IsLiability() bool {
	return t == AccountTypeCredit
}

// Account represents an account record. Balances are milliunits and satisfy
// ClearedBalance + UnclearedBalance == Balance.
type Account struct {
	ID               uuid.UUID       `db:"id"`
	BudgetID         uuid.UUID       `db:"budget_id"`
	Name             string          `db:"name"`
	Type             AccountType     `db:"type"`
	Balance          money.Milliunit `db:"balance"`
	ClearedBalance   money.Milliunit `db:"cleared_balance"`
	UnclearedBalance money.Milliunit `db:"uncleared_balance"`
	CreatedAt        time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	BudgetID         uuid.UUID
	Name             string
	Type             AccountType
	Balance          money.Milliunit
	ClearedBalance   money.Milliunit
	UnclearedBalance money.Milliunit
}

// IAccountReader defines the read operations on the accounts table.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*Account, error)
}

// IAccountWriter adds the transactional mutations. The ForUpdate read takes a
// row lock so balance adjustments within a unit of work do not race.
type IAccountWriter interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalances(ctx context.Context, id uuid.UUID, balance, cleared, uncleared money.Milliunit) error
}
