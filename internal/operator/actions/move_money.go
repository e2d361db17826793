package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// MoveMoney transfers assigned funds between two categories in one month. The
// transfer is zero-sum on assigned for that month, and the available delta
// cascades through every later stored row of both categories. Moving more than
// the source has available is allowed; the source simply goes negative.
type MoveMoney struct {
	BudgetID         uuid.UUID
	SourceCategoryID uuid.UUID
	TargetCategoryID uuid.UUID
	Month            budget.Month
	Amount           money.Milliunit

	IAction
}

func (a *MoveMoney) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount <= 0 {
		return budget.ErrNonPositiveAmount
	}
	if a.SourceCategoryID == a.TargetCategoryID {
		return budget.ErrSameCategory
	}

	for _, id := range []uuid.UUID{a.SourceCategoryID, a.TargetCategoryID} {
		cat, err := writer.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return budget.ErrCategoryNotFound
		}
	}

	source, err := loadOrDefaultEntry(ctx, writer, a.BudgetID, a.SourceCategoryID, a.Month)
	if err != nil {
		return err
	}
	target, err := loadOrDefaultEntry(ctx, writer, a.BudgetID, a.TargetCategoryID, a.Month)
	if err != nil {
		return err
	}

	source.Assigned -= a.Amount
	source.Available -= a.Amount
	target.Assigned += a.Amount
	target.Available += a.Amount

	if err := writer.Ledger.Upsert(ctx, source); err != nil {
		return err
	}
	if err := writer.Ledger.Upsert(ctx, target); err != nil {
		return err
	}

	if err := shiftAvailableAfter(ctx, writer, a.SourceCategoryID, a.Month, -a.Amount); err != nil {
		return err
	}
	return shiftAvailableAfter(ctx, writer, a.TargetCategoryID, a.Month, a.Amount)
}
