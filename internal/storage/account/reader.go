package account

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
)

const table = "accounts"

var columns = []string{"id", "budget_id", "name", "type", "balance", "cleared_balance", "uncleared_balance", "created_at"}

type Reader struct {
	exec bob.Executor
}

var _ IAccountReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = psql.Quote(table, c)
	}
	return sm.Columns(cols...)
}

// FindByID retrieves an account by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListByBudget returns all accounts for a budget ordered by name.
func (r *Reader) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*Account, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "budget_id").EQ(psql.Arg(budgetID))),
		sm.OrderBy(psql.Quote(table, "name")).Asc(),
		sm.OrderBy(psql.Quote(table, "id")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Account]())
}
