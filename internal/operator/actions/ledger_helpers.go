package actions

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
)

// loadOrDefaultEntry returns the stored entry for (category, month), or a
// fresh entry seeded with the carryover from the latest earlier month. A
// category with no history starts from zero.
func loadOrDefaultEntry(ctx context.Context, writer *storage.Writer, budgetID, categoryID uuid.UUID, month budget.Month) (*ledger.Entry, error) {
	entry, err := writer.Ledger.Get(ctx, categoryID, month)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	var carryover money.Milliunit
	prev, err := writer.Ledger.LastOnOrBefore(ctx, categoryID, month.Prev())
	if err != nil {
		return nil, err
	}
	if prev != nil {
		carryover = prev.Available
	}

	return &ledger.Entry{
		BudgetID:   budgetID,
		CategoryID: categoryID,
		Month:      month,
		Available:  carryover,
	}, nil
}

// shiftAvailableAfter applies a fixed delta to the available of every stored
// entry of the category after month. The carry-forward chain absorbs the delta
// without a full recomputation; iteration is bounded by the last stored row.
func shiftAvailableAfter(ctx context.Context, writer *storage.Writer, categoryID uuid.UUID, month budget.Month, delta money.Milliunit) error {
	if delta == 0 {
		return nil
	}

	entries, err := writer.Ledger.ListAfter(ctx, categoryID, month)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		entry.Available += delta
		if err := writer.Ledger.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// sortedUniqueMonths deduplicates and orders months ascending. Refreshes must
// run oldest first so a later month's carryover sees the earlier refresh.
func sortedUniqueMonths(months []budget.Month) []budget.Month {
	seen := make(map[budget.Month]struct{}, len(months))
	unique := months[:0]
	for _, m := range months {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		unique = append(unique, m)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Before(unique[j]) })
	return unique
}
