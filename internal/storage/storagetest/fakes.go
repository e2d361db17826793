// Package storagetest provides stateful in-memory implementations of the
// storage interfaces. The compound operations cascade across months, so their
// tests need fakes that remember writes, not canned call expectations.
package storagetest

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Store is an in-memory stand-in for the relational store. All four entity
// fakes share it so cross-entity operations see each other's writes.
type Store struct {
	Accounts     *FakeAccounts
	Categories   *FakeCategories
	Transactions *FakeTransactions
	Ledger       *FakeLedger
}

func NewStore() *Store {
	return &Store{
		Accounts:     &FakeAccounts{byID: make(map[uuid.UUID]*account.Account)},
		Categories:   &FakeCategories{},
		Transactions: &FakeTransactions{},
		Ledger:       &FakeLedger{entries: make(map[ledgerKey]*ledger.Entry)},
	}
}

// Writer builds a storage.Writer backed by the fakes. Commit and Rollback are
// never called on it; the operations under test only use the entity fields.
func (s *Store) Writer() *storage.Writer {
	return &storage.Writer{
		Accounts:     s.Accounts,
		Categories:   s.Categories,
		Transactions: s.Transactions,
		Ledger:       s.Ledger,
	}
}

// Reader builds a storage.Reader backed by the fakes.
func (s *Store) Reader() *storage.Reader {
	return &storage.Reader{
		Accounts:     s.Accounts,
		Categories:   s.Categories,
		Transactions: s.Transactions,
		Ledger:       s.Ledger,
	}
}

// FakeAccounts implements account.IAccountWriter over a map.
type FakeAccounts struct {
	byID map[uuid.UUID]*account.Account
}

// Seed stores a copy of the account.
func (f *FakeAccounts) Seed(acc *account.Account) {
	cp := *acc
	f.byID[acc.ID] = &cp
}

func (f *FakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	acc, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *acc
	return &cp, nil
}

func (f *FakeAccounts) ListByBudget(_ context.Context, budgetID uuid.UUID) ([]*account.Account, error) {
	var result []*account.Account
	for _, acc := range f.byID {
		if acc.BudgetID == budgetID {
			cp := *acc
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *FakeAccounts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return f.FindByID(ctx, id)
}

func (f *FakeAccounts) Insert(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	f.byID[id] = &account.Account{
		ID:               id,
		BudgetID:         create.BudgetID,
		Name:             create.Name,
		Type:             create.Type,
		Balance:          create.Balance,
		ClearedBalance:   create.ClearedBalance,
		UnclearedBalance: create.UnclearedBalance,
	}
	return id, nil
}

func (f *FakeAccounts) UpdateBalances(_ context.Context, id uuid.UUID, balance, cleared, uncleared money.Milliunit) error {
	acc, ok := f.byID[id]
	if !ok {
		return nil
	}
	acc.Balance = balance
	acc.ClearedBalance = cleared
	acc.UnclearedBalance = uncleared
	return nil
}

// FakeCategories implements category.ICategoryWriter over slices.
type FakeCategories struct {
	groups     []*category.Group
	categories []*category.Category
}

func (f *FakeCategories) SeedGroup(g *category.Group) {
	cp := *g
	f.groups = append(f.groups, &cp)
}

func (f *FakeCategories) SeedCategory(c *category.Category) {
	cp := *c
	f.categories = append(f.categories, &cp)
}

func (f *FakeCategories) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeCategories) ListByBudget(_ context.Context, budgetID uuid.UUID) ([]*category.Category, error) {
	var result []*category.Category
	for _, c := range f.categories {
		if c.BudgetID == budgetID {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *FakeCategories) ListGroups(_ context.Context, budgetID uuid.UUID) ([]*category.Group, error) {
	var result []*category.Group
	for _, g := range f.groups {
		if g.BudgetID == budgetID {
			cp := *g
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sort < result[j].Sort })
	return result, nil
}

func (f *FakeCategories) FindGroupByName(_ context.Context, budgetID uuid.UUID, name string) (*category.Group, error) {
	for _, g := range f.groups {
		if g.BudgetID == budgetID && g.Name == name {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeCategories) FindIncomeCategory(_ context.Context, budgetID uuid.UUID) (*category.Category, error) {
	for _, g := range f.groups {
		if g.BudgetID != budgetID || !g.IsIncome {
			continue
		}
		for _, c := range f.categories {
			if c.GroupID == g.ID {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *FakeCategories) FindPaymentCategory(_ context.Context, accountID uuid.UUID) (*category.Category, error) {
	for _, c := range f.categories {
		if c.LinkedAccountID != nil && *c.LinkedAccountID == accountID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeCategories) Insert(_ context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	f.categories = append(f.categories, &category.Category{
		ID:              id,
		BudgetID:        create.BudgetID,
		GroupID:         create.GroupID,
		Name:            create.Name,
		Sort:            create.Sort,
		LinkedAccountID: create.LinkedAccountID,
	})
	return id, nil
}

func (f *FakeCategories) InsertGroup(_ context.Context, create *category.GroupCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	f.groups = append(f.groups, &category.Group{
		ID:       id,
		BudgetID: create.BudgetID,
		Name:     create.Name,
		Sort:     create.Sort,
		Hidden:   create.Hidden,
		IsIncome: create.IsIncome,
	})
	return id, nil
}

// FakeTransactions implements transaction.ITransactionWriter over a slice.
type FakeTransactions struct {
	rows []*transaction.Transaction
}

func (f *FakeTransactions) Seed(tx *transaction.Transaction) {
	cp := *tx
	f.rows = append(f.rows, &cp)
}

// All returns copies of every stored row, for assertions.
func (f *FakeTransactions) All() []*transaction.Transaction {
	result := make([]*transaction.Transaction, len(f.rows))
	for i, tx := range f.rows {
		cp := *tx
		result[i] = &cp
	}
	return result
}

func (f *FakeTransactions) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	for _, tx := range f.rows {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeTransactions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return f.FindByID(ctx, id)
}

func (f *FakeTransactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var matched []*transaction.Transaction
	for _, tx := range f.rows {
		if filter.BudgetID != nil && tx.BudgetID != *filter.BudgetID {
			continue
		}
		if filter.AccountID != nil && tx.AccountID != *filter.AccountID {
			continue
		}
		if filter.CategoryID != nil && (tx.CategoryID == nil || *tx.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.MaxCreationTime != nil && tx.CreatedAt.After(*filter.MaxCreationTime) {
			continue
		}
		cp := *tx
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit+1 {
		matched = matched[:filter.Limit+1]
	}
	return matched, nil
}

func (f *FakeTransactions) ActivityByCategory(_ context.Context, budgetID uuid.UUID, month budget.Month) (map[uuid.UUID]money.Milliunit, error) {
	totals := make(map[uuid.UUID]money.Milliunit)
	for _, tx := range f.rows {
		if tx.BudgetID != budgetID || tx.CategoryID == nil || budget.MonthOf(tx.Date) != month {
			continue
		}
		totals[*tx.CategoryID] += tx.Amount
	}
	return totals, nil
}

func (f *FakeTransactions) CardActivity(_ context.Context, accountID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	var total money.Milliunit
	for _, tx := range f.rows {
		if tx.AccountID != accountID || tx.CategoryID == nil || budget.MonthOf(tx.Date) != month {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

func (f *FakeTransactions) IncomeThrough(_ context.Context, categoryID uuid.UUID, through budget.Month) (money.Milliunit, error) {
	var total money.Milliunit
	for _, tx := range f.rows {
		if tx.CategoryID == nil || *tx.CategoryID != categoryID {
			continue
		}
		if budget.MonthOf(tx.Date).After(through) {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

func (f *FakeTransactions) IncomeInMonth(_ context.Context, categoryID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	var total money.Milliunit
	for _, tx := range f.rows {
		if tx.CategoryID == nil || *tx.CategoryID != categoryID {
			continue
		}
		if budget.MonthOf(tx.Date) != month {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

func (f *FakeTransactions) CountCleared(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range f.rows {
		if tx.AccountID == accountID && tx.Cleared == transaction.StateCleared {
			count++
		}
	}
	return count, nil
}

func (f *FakeTransactions) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	f.rows = append(f.rows, &transaction.Transaction{
		ID:                    id,
		BudgetID:              create.BudgetID,
		AccountID:             create.AccountID,
		CategoryID:            create.CategoryID,
		Date:                  create.Date,
		Payee:                 create.Payee,
		Memo:                  create.Memo,
		Amount:                create.Amount,
		Cleared:               create.Cleared,
		TransferTransactionID: create.TransferTransactionID,
		Flag:                  create.Flag,
	})
	return id, nil
}

func (f *FakeTransactions) Update(_ context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error {
	for _, tx := range f.rows {
		if tx.ID != id {
			continue
		}
		tx.CategoryID = update.CategoryID
		tx.Date = update.Date
		tx.Payee = update.Payee
		tx.Memo = update.Memo
		tx.Amount = update.Amount
		tx.Cleared = update.Cleared
		tx.TransferTransactionID = update.TransferTransactionID
		tx.Flag = update.Flag
		return nil
	}
	return nil
}

func (f *FakeTransactions) Delete(_ context.Context, id uuid.UUID) error {
	for i, tx := range f.rows {
		if tx.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *FakeTransactions) MarkClearedReconciled(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range f.rows {
		if tx.AccountID == accountID && tx.Cleared == transaction.StateCleared {
			tx.Cleared = transaction.StateReconciled
			count++
		}
	}
	return count, nil
}

type ledgerKey struct {
	categoryID uuid.UUID
	month      budget.Month
}

// FakeLedger implements ledger.ILedgerWriter over a map, including the
// ghost-row rule: upserting an all-zero entry deletes the row.
type FakeLedger struct {
	entries map[ledgerKey]*ledger.Entry
}

func (f *FakeLedger) Seed(entry *ledger.Entry) {
	cp := *entry
	f.entries[ledgerKey{entry.CategoryID, entry.Month}] = &cp
}

// Len returns the number of stored rows.
func (f *FakeLedger) Len() int {
	return len(f.entries)
}

func (f *FakeLedger) Get(_ context.Context, categoryID uuid.UUID, month budget.Month) (*ledger.Entry, error) {
	entry, ok := f.entries[ledgerKey{categoryID, month}]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (f *FakeLedger) ListAfter(_ context.Context, categoryID uuid.UUID, month budget.Month) ([]*ledger.Entry, error) {
	var result []*ledger.Entry
	for key, entry := range f.entries {
		if key.categoryID == categoryID && key.month.After(month) {
			cp := *entry
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.Before(result[j].Month) })
	return result, nil
}

func (f *FakeLedger) ListRange(_ context.Context, categoryID uuid.UUID, from, to budget.Month) ([]*ledger.Entry, error) {
	var result []*ledger.Entry
	for key, entry := range f.entries {
		if key.categoryID != categoryID || key.month.Before(from) || key.month.After(to) {
			continue
		}
		cp := *entry
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.Before(result[j].Month) })
	return result, nil
}

func (f *FakeLedger) LastOnOrBefore(_ context.Context, categoryID uuid.UUID, month budget.Month) (*ledger.Entry, error) {
	var latest *ledger.Entry
	for key, entry := range f.entries {
		if key.categoryID != categoryID || key.month.After(month) {
			continue
		}
		if latest == nil || latest.Month.Before(key.month) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *FakeLedger) ListByMonth(_ context.Context, budgetID uuid.UUID, month budget.Month) ([]*ledger.Entry, error) {
	var result []*ledger.Entry
	for key, entry := range f.entries {
		if entry.BudgetID == budgetID && key.month == month {
			cp := *entry
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *FakeLedger) SumAssignedThrough(_ context.Context, budgetID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	var total money.Milliunit
	for key, entry := range f.entries {
		if entry.BudgetID == budgetID && !key.month.After(month) {
			total += entry.Assigned
		}
	}
	return total, nil
}

func (f *FakeLedger) Upsert(_ context.Context, entry *ledger.Entry) error {
	key := ledgerKey{entry.CategoryID, entry.Month}
	if entry.IsGhost() {
		delete(f.entries, key)
		return nil
	}
	cp := *entry
	f.entries[key] = &cp
	return nil
}
