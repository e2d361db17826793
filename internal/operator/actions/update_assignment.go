package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// UpdateAssignment sets the assigned amount for (category, month) and shifts
// the month's available, and every later stored available, by the difference.
type UpdateAssignment struct {
	BudgetID   uuid.UUID
	CategoryID uuid.UUID
	Month      budget.Month
	Assigned   money.Milliunit

	IAction
}

func (a *UpdateAssignment) Perform(ctx context.Context, writer *storage.Writer) error {
	cat, err := writer.Categories.FindByID(ctx, a.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return budget.ErrCategoryNotFound
	}

	entry, err := loadOrDefaultEntry(ctx, writer, a.BudgetID, a.CategoryID, a.Month)
	if err != nil {
		return err
	}

	delta := a.Assigned - entry.Assigned
	entry.Assigned = a.Assigned
	entry.Available += delta

	if err := writer.Ledger.Upsert(ctx, entry); err != nil {
		return err
	}
	return shiftAvailableAfter(ctx, writer, a.CategoryID, a.Month, delta)
}
