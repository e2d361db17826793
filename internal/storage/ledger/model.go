// Package ledger stores the sparse per-(category, month) budget rows. A row
// whose assigned, activity and available are all zero is deleted rather than
// written, so a budget's history never accumulates empty rows.
package ledger

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

// Entry is the (category, month) ledger row. All amounts are milliunits.
// Available = prior month's available + Assigned + Activity.
type Entry struct {
	BudgetID   uuid.UUID       `db:"budget_id"`
	CategoryID uuid.UUID       `db:"category_id"`
	Month      budget.Month    `db:"month"`
	Assigned   money.Milliunit `db:"assigned"`
	Activity   money.Milliunit `db:"activity"`
	Available  money.Milliunit `db:"available"`
}

// IsGhost reports whether the entry is all-zero and must not be persisted.
func (e *Entry) IsGhost() bool {
	return e.Assigned == 0 && e.Activity == 0 && e.Available == 0
}

// ILedgerReader defines the read operations on ledger entries.
type ILedgerReader interface {
	// Get returns the entry for (category, month), or nil when absent.
	Get(ctx context.Context, categoryID uuid.UUID, month budget.Month) (*Entry, error)
	// ListAfter returns the category's entries strictly after month, ascending.
	ListAfter(ctx context.Context, categoryID uuid.UUID, month budget.Month) ([]*Entry, error)
	// ListRange returns the category's entries in [from, to], ascending.
	ListRange(ctx context.Context, categoryID uuid.UUID, from, to budget.Month) ([]*Entry, error)
	// LastOnOrBefore returns the category's latest entry at or before month,
	// or nil when the category has no history yet. The available of that entry
	// is the carryover base for the months that follow it.
	LastOnOrBefore(ctx context.Context, categoryID uuid.UUID, month budget.Month) (*Entry, error)
	// ListByMonth returns every entry of the budget for one month.
	ListByMonth(ctx context.Context, budgetID uuid.UUID, month budget.Month) ([]*Entry, error)
	// SumAssignedThrough sums assigned across all categories of the budget
	// from the beginning of history through month inclusive.
	SumAssignedThrough(ctx context.Context, budgetID uuid.UUID, month budget.Month) (money.Milliunit, error)
}

// ILedgerWriter adds the upsert-or-delete mutation.
type ILedgerWriter interface {
	ILedgerReader
	// Upsert writes the entry, or deletes the row when the triple is all-zero.
	Upsert(ctx context.Context, entry *Entry) error
}
