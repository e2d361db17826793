package ledger

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

const table = "ledger_entries"

type Reader struct {
	exec bob.Executor
}

var _ ILedgerReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns(
		psql.Quote(table, "budget_id"),
		psql.Quote(table, "category_id"),
		psql.Quote(table, "month"),
		psql.Quote(table, "assigned"),
		psql.Quote(table, "activity"),
		psql.Quote(table, "available"),
	)
}

func (r *Reader) Get(ctx context.Context, categoryID uuid.UUID, month budget.Month) (*Entry, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "month").EQ(psql.Arg(month))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Entry]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) ListAfter(ctx context.Context, categoryID uuid.UUID, month budget.Month) ([]*Entry, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "month").GT(psql.Arg(month))),
		sm.OrderBy(psql.Quote(table, "month")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Entry]())
}

func (r *Reader) ListRange(ctx context.Context, categoryID uuid.UUID, from, to budget.Month) ([]*Entry, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "month").GTE(psql.Arg(from))),
		sm.Where(psql.Quote(table, "month").LTE(psql.Arg(to))),
		sm.OrderBy(psql.Quote(table, "month")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Entry]())
}

func (r *Reader) LastOnOrBefore(ctx context.Context, categoryID uuid.UUID, month budget.Month) (*Entry, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote(table, "month").LTE(psql.Arg(month))),
		sm.OrderBy(psql.Quote(table, "month")).Desc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Entry]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) ListByMonth(ctx context.Context, budgetID uuid.UUID, month budget.Month) ([]*Entry, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote(table, "month").EQ(psql.Arg(month))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Entry]())
}

func (r *Reader) SumAssignedThrough(ctx context.Context, budgetID uuid.UUID, month budget.Month) (money.Milliunit, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(assigned), 0)")),
		sm.From(table),
		sm.Where(psql.Quote(table, "budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote(table, "month").LTE(psql.Arg(month))),
	)
	total, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, err
	}
	return money.Milliunit(total), nil
}
