package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

const table = "transactions"

type Reader struct {
	exec bob.Executor
}

var _ ITransactionReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns(
		psql.Quote(table, "id"),
		psql.Quote(table, "budget_id"),
		psql.Quote(table, "account_id"),
		psql.Quote(table, "category_id"),
		psql.Quote(table, "date"),
		psql.Quote(table, "payee"),
		psql.Quote(table, "memo"),
		psql.Quote(table, "amount"),
		psql.Quote(table, "cleared"),
		psql.Quote(table, "transfer_transaction_id"),
		psql.Quote(table, "flag"),
		psql.Quote(table, "created_at"),
	)
}

// monthBounds returns the half-open [start, end) date range of a month.
func monthBounds(m budget.Month) (start, end interface{}) {
	return m.Time(), m.Next().Time()
}

// FindByID retrieves a transaction by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List returns transactions matching the filter, newest first. Nil filter
// returns all.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		selectColumns(),
		sm.From(table),
	}
	if filter != nil {
		if filter.BudgetID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote(table, "budget_id").EQ(psql.Arg(*filter.BudgetID))))
		}
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote(table, "account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote(table, "created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote(table, "created_at")).Desc(),
		sm.OrderBy(psql.Quote(table, "id")).Desc(),
	)
	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

type categoryTotalRow struct {
	CategoryID uuid.UUID       `db:"category_id"`
	Total      money.Milliunit `db:"total"`
}

func (r *Reader) ActivityByCategory(ctx context.Context, budgetID uuid.UUID, month budget.Month) (map[uuid.UUID]money.Milliunit, error) {
	start, end := monthBounds(month)
	q := psql.Select(
		sm.Columns(
			psql.Quote(table, "category_id"),
			psql.Raw("COALESCE(SUM(amount), 0) AS total"),
		),
		sm.From(table),
		sm.Where(psql.Quote(table, "budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote(table, "category_id").IsNotNull()),
		sm.Where(psql.Quote(table, "date").GTE(psql.Arg(start))),
		sm.Where(psql.Quote(table, "date").LT(psql.Arg(end))),
		sm.GroupBy(psql.Quote(table, "category_id")),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[categoryTotalRow]())
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]money.Milliunit, len(rows))
	for _, row := range rows {
		totals[row.CategoryID] = row.Total
	}
	return totals, nil
}

func (r *Reader) sumAmounts(ctx context.Context, mods ...bob.Mod[*dialect.SelectQuery]) (money.Milliunit, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(table),
	}, mods...)

	total, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, err
	}
	return money.Milliunit(total), nil
}

func (r *Reader) CardActivity(ctx context.Context, accountID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	start, end := monthBounds(month)
	return r.sumAmounts(ctx,
		sm.Where(psql.Quote(table, "account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote(table, "category_id").IsNotNull()),
		sm.Where(psql.Quote(table, "date").GTE(psql.Arg(start))),
		sm.Where(psql.Quote(table, "date").LT(psql.Arg(end))),
	)
}

func (r *Reader) IncomeThrough(ctx context.Context, categoryID uuid.UUID, through budget.Month) (money.Milliunit, error) {
	_, end := monthBounds(through)
	return r.sumAmounts(ctx,
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "date").LT(psql.Arg(end))),
	)
}

func (r *Reader) IncomeInMonth(ctx context.Context, categoryID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	start, end := monthBounds(month)
	return r.sumAmounts(ctx,
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "date").GTE(psql.Arg(start))),
		sm.Where(psql.Quote(table, "date").LT(psql.Arg(end))),
	)
}

func (r *Reader) CountCleared(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COUNT(*)")),
		sm.From(table),
		sm.Where(psql.Quote(table, "account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote(table, "cleared").EQ(psql.Arg(StateCleared))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}
