package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Group is an ordered set of categories. Exactly one group per budget carries
// IsIncome and holds the Ready-to-Assign pseudo-category.
type Group struct {
	ID       uuid.UUID `db:"id"`
	BudgetID uuid.UUID `db:"budget_id"`
	Name     string    `db:"name"`
	Sort     int       `db:"sort"`
	Hidden   bool      `db:"hidden"`
	IsIncome bool      `db:"is_income"`
}

// Category belongs to one group. LinkedAccountID is set only on the
// auto-generated payment category of a credit account.
type Category struct {
	ID              uuid.UUID  `db:"id"`
	BudgetID        uuid.UUID  `db:"budget_id"`
	GroupID         uuid.UUID  `db:"group_id"`
	Name            string     `db:"name"`
	Sort            int        `db:"sort"`
	LinkedAccountID *uuid.UUID `db:"linked_account_id"`
}

// IsPayment reports whether this is a credit-card payment category.
func (c *Category) IsPayment() bool {
	return c.LinkedAccountID != nil
}

// GroupCreate is the input for creating a category group.
type GroupCreate struct {
	BudgetID uuid.UUID
	Name     string
	Sort     int
	Hidden   bool
	IsIncome bool
}

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	BudgetID        uuid.UUID
	GroupID         uuid.UUID
	Name            string
	Sort            int
	LinkedAccountID *uuid.UUID
}

// ICategoryReader defines the read operations on category groups and categories.
type ICategoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*Category, error)
	ListGroups(ctx context.Context, budgetID uuid.UUID) ([]*Group, error)
	FindGroupByName(ctx context.Context, budgetID uuid.UUID, name string) (*Group, error)
	FindIncomeCategory(ctx context.Context, budgetID uuid.UUID) (*Category, error)
	FindPaymentCategory(ctx context.Context, accountID uuid.UUID) (*Category, error)
}

// ICategoryWriter adds the mutations used when accounts create their payment
// categories.
type ICategoryWriter interface {
	ICategoryReader
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	InsertGroup(ctx context.Context, create *GroupCreate) (uuid.UUID, error)
}
