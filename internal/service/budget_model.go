package service

import (
	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

// Overspending classifies a negative available. It is a read-side annotation
// computed on demand, never stored on the ledger entry.
type Overspending int

const (
	// OverspendingNone: available is zero or positive.
	OverspendingNone Overspending = iota
	// OverspendingCash: a true shortfall that must be re-covered by future
	// assignment; it reduces Ready-to-Assign.
	OverspendingCash
	// OverspendingCredit: money already spent on a linked card, tracked as
	// debt against that account rather than a shortfall.
	OverspendingCredit
)

func (o Overspending) String() string {
	switch o {
	case OverspendingCash:
		return "cash"
	case OverspendingCredit:
		return "credit"
	default:
		return ""
	}
}

// Classify labels a category's available for a month. Pure: the same inputs
// always yield the same label.
func Classify(cat *category.Category, available money.Milliunit) Overspending {
	if available >= 0 {
		return OverspendingNone
	}
	if cat.IsPayment() {
		return OverspendingCredit
	}
	return OverspendingCash
}

// CategoryMonthView is one category's ledger state for a month, with the
// carryover materialized for categories that have no stored row.
type CategoryMonthView struct {
	Category     *category.Category
	Assigned     money.Milliunit
	Activity     money.Milliunit
	Available    money.Milliunit
	Overspending Overspending
}

// GroupView is a category group with its categories' month state.
type GroupView struct {
	Group      *category.Group
	Categories []CategoryMonthView
}

// RTABreakdown decomposes Ready-to-Assign for display. The three parts sum
// exactly to Total.
type RTABreakdown struct {
	LeftoverFromPriorMonths money.Milliunit
	IncomeThisMonth         money.Milliunit
	AssignedThisMonth       money.Milliunit
	Total                   money.Milliunit
}

// MonthView is the full budget screen for one month.
type MonthView struct {
	Month         budget.Month
	Groups        []GroupView
	ReadyToAssign RTABreakdown
}
