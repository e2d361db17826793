package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// BudgetService computes the derived read-side state: per-month category
// availability with carryover, overspending classification, and the
// Ready-to-Assign figure.
type BudgetService struct {
	reader *storage.Reader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(reader *storage.Reader) *BudgetService {
	return &BudgetService{reader: reader}
}

// ReadyToAssign returns unassigned income available to budget as of month:
// cumulative income inflow minus cumulative assignment, with cash overspending
// carried into the month subtracted since it must be re-covered before new
// money is free.
func (s *BudgetService) ReadyToAssign(ctx context.Context, budgetID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	breakdown, err := s.ReadyToAssignBreakdown(ctx, budgetID, month)
	if err != nil {
		return 0, err
	}
	return breakdown.Total, nil
}

// ReadyToAssignBreakdown decomposes Ready-to-Assign into leftover from prior
// months, this month's income, and this month's assignments. The independent
// aggregates are read in parallel; they only touch disjoint tables.
func (s *BudgetService) ReadyToAssignBreakdown(ctx context.Context, budgetID uuid.UUID, month budget.Month) (*RTABreakdown, error) {
	incomeCategory, err := s.reader.Categories.FindIncomeCategory(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if incomeCategory == nil {
		return nil, budget.ErrCategoryNotFound
	}

	prevMonth := month.Prev()
	var (
		incomeThroughPrev   money.Milliunit
		incomeThisMonth     money.Milliunit
		assignedThroughPrev money.Milliunit
		assignedThrough     money.Milliunit
		cashOverspend       money.Milliunit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		incomeThroughPrev, err = s.reader.Transactions.IncomeThrough(gctx, incomeCategory.ID, prevMonth)
		return err
	})
	g.Go(func() (err error) {
		incomeThisMonth, err = s.reader.Transactions.IncomeInMonth(gctx, incomeCategory.ID, month)
		return err
	})
	g.Go(func() (err error) {
		assignedThroughPrev, err = s.reader.Ledger.SumAssignedThrough(gctx, budgetID, prevMonth)
		return err
	})
	g.Go(func() (err error) {
		assignedThrough, err = s.reader.Ledger.SumAssignedThrough(gctx, budgetID, month)
		return err
	})
	g.Go(func() (err error) {
		cashOverspend, err = s.cashOverspendAsOf(gctx, budgetID, incomeCategory.ID, prevMonth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown := &RTABreakdown{
		LeftoverFromPriorMonths: incomeThroughPrev - assignedThroughPrev + cashOverspend,
		IncomeThisMonth:         incomeThisMonth,
		AssignedThisMonth:       assignedThrough - assignedThroughPrev,
	}
	breakdown.Total = breakdown.LeftoverFromPriorMonths + breakdown.IncomeThisMonth - breakdown.AssignedThisMonth
	return breakdown, nil
}

// cashOverspendAsOf sums the negative availables of cash categories as of
// month. Negative available carries forward unchanged, so each category's
// latest entry already accumulates its full shortfall; summing the latest
// entry per category counts every overspend exactly once.
func (s *BudgetService) cashOverspendAsOf(ctx context.Context, budgetID, incomeCategoryID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	categories, err := s.reader.Categories.ListByBudget(ctx, budgetID)
	if err != nil {
		return 0, err
	}

	var total money.Milliunit
	for _, cat := range categories {
		if cat.ID == incomeCategoryID || cat.IsPayment() {
			continue
		}
		last, err := s.reader.Ledger.LastOnOrBefore(ctx, cat.ID, month)
		if err != nil {
			return 0, err
		}
		if last != nil && last.Available < 0 {
			total += last.Available
		}
	}
	return total, nil
}

// GetMonth builds the budget screen for one month: every non-income category
// with its assigned/activity/available (carryover materialized for categories
// without a stored row), overspending labels, and the RTA breakdown.
func (s *BudgetService) GetMonth(ctx context.Context, budgetID uuid.UUID, month budget.Month) (*MonthView, error) {
	groups, err := s.reader.Categories.ListGroups(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	categories, err := s.reader.Categories.ListByBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	entries, err := s.reader.Ledger.ListByMonth(ctx, budgetID, month)
	if err != nil {
		return nil, err
	}

	entryByCategory := make(map[uuid.UUID]int, len(entries))
	for i, entry := range entries {
		entryByCategory[entry.CategoryID] = i
	}

	byGroup := make(map[uuid.UUID][]CategoryMonthView)
	for _, cat := range categories {
		view := CategoryMonthView{Category: cat}
		if i, ok := entryByCategory[cat.ID]; ok {
			view.Assigned = entries[i].Assigned
			view.Activity = entries[i].Activity
			view.Available = entries[i].Available
		} else {
			last, err := s.reader.Ledger.LastOnOrBefore(ctx, cat.ID, month)
			if err != nil {
				return nil, err
			}
			if last != nil {
				view.Available = last.Available
			}
		}
		view.Overspending = Classify(cat, view.Available)
		byGroup[cat.GroupID] = append(byGroup[cat.GroupID], view)
	}

	result := &MonthView{Month: month}
	for _, group := range groups {
		if group.IsIncome {
			// Income inflow is surfaced through Ready-to-Assign, not as rows.
			continue
		}
		result.Groups = append(result.Groups, GroupView{
			Group:      group,
			Categories: byGroup[group.ID],
		})
	}

	breakdown, err := s.ReadyToAssignBreakdown(ctx, budgetID, month)
	if err != nil {
		return nil, err
	}
	result.ReadyToAssign = *breakdown
	return result, nil
}
