package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
)

// RefreshActivity recomputes every category's activity and available for the
// given months from the underlying transactions. It is the second phase of the
// write-then-refresh split and is idempotent: running it twice leaves the
// ledger unchanged.
type RefreshActivity struct {
	BudgetID uuid.UUID
	Months   []budget.Month

	IAction
}

func (a *RefreshActivity) Perform(ctx context.Context, writer *storage.Writer) error {
	return refreshMonths(ctx, writer, a.BudgetID, a.Months)
}

// refreshMonths is shared by RefreshActivity and the transaction mutations,
// which refresh in the same unit of work as their write. Months run ascending
// so a later month's carryover sees the earlier refresh; cascades overlap
// month key spaces, so they are not parallelized inside the transaction.
func refreshMonths(ctx context.Context, writer *storage.Writer, budgetID uuid.UUID, months []budget.Month) error {
	for _, month := range sortedUniqueMonths(months) {
		if err := refreshMonth(ctx, writer, budgetID, month); err != nil {
			return err
		}
	}
	return nil
}

func refreshMonth(ctx context.Context, writer *storage.Writer, budgetID uuid.UUID, month budget.Month) error {
	categories, err := writer.Categories.ListByBudget(ctx, budgetID)
	if err != nil {
		return err
	}
	incomeCategory, err := writer.Categories.FindIncomeCategory(ctx, budgetID)
	if err != nil {
		return err
	}

	activityTotals, err := writer.Transactions.ActivityByCategory(ctx, budgetID, month)
	if err != nil {
		return err
	}

	for _, cat := range categories {
		// Income inflow feeds Ready-to-Assign directly, never a ledger row.
		if incomeCategory != nil && cat.ID == incomeCategory.ID {
			continue
		}

		activity := activityTotals[cat.ID]
		if cat.IsPayment() {
			// A payment category mirrors the card's categorized spending:
			// outflow on the card becomes money set aside for the payment.
			cardSpending, err := writer.Transactions.CardActivity(ctx, *cat.LinkedAccountID, month)
			if err != nil {
				return err
			}
			activity = -cardSpending
		}

		if err := refreshCategoryMonth(ctx, writer, budgetID, cat.ID, month, activity); err != nil {
			return err
		}
	}
	return nil
}

// refreshCategoryMonth rewrites one (category, month) row with the recomputed
// activity, reapplies the carryover rule, and shifts later rows by the
// resulting available delta.
func refreshCategoryMonth(ctx context.Context, writer *storage.Writer, budgetID, categoryID uuid.UUID, month budget.Month, activity money.Milliunit) error {
	entry, err := writer.Ledger.Get(ctx, categoryID, month)
	if err != nil {
		return err
	}

	var carryover money.Milliunit
	prev, err := writer.Ledger.LastOnOrBefore(ctx, categoryID, month.Prev())
	if err != nil {
		return err
	}
	if prev != nil {
		carryover = prev.Available
	}

	var assigned, oldAvailable money.Milliunit
	if entry != nil {
		assigned = entry.Assigned
		oldAvailable = entry.Available
	} else {
		// A missing row implies the carryover passed through untouched.
		oldAvailable = carryover
	}

	newAvailable := carryover + assigned + activity
	if entry == nil && assigned == 0 && activity == 0 {
		return nil
	}

	updated := &ledger.Entry{
		BudgetID:   budgetID,
		CategoryID: categoryID,
		Month:      month,
		Assigned:   assigned,
		Activity:   activity,
		Available:  newAvailable,
	}
	if err := writer.Ledger.Upsert(ctx, updated); err != nil {
		return err
	}

	return shiftAvailableAfter(ctx, writer, categoryID, month, newAvailable-oldAvailable)
}
