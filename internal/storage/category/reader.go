package category

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

const (
	categoryTable = "categories"
	groupTable    = "category_groups"
)

type Reader struct {
	exec bob.Executor
}

var _ ICategoryReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func categoryColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns(
		psql.Quote(categoryTable, "id"),
		psql.Quote(categoryTable, "budget_id"),
		psql.Quote(categoryTable, "group_id"),
		psql.Quote(categoryTable, "name"),
		psql.Quote(categoryTable, "sort"),
		psql.Quote(categoryTable, "linked_account_id"),
	)
}

func (r *Reader) one(ctx context.Context, mods ...bob.Mod[*dialect.SelectQuery]) (*Category, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		categoryColumns(),
		sm.From(categoryTable),
	}, mods...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID retrieves a category by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return r.one(ctx, sm.Where(psql.Quote(categoryTable, "id").EQ(psql.Arg(id))))
}

// ListByBudget returns all categories for a budget in group/sort order.
func (r *Reader) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*Category, error) {
	q := psql.Select(
		categoryColumns(),
		sm.From(categoryTable),
		sm.Where(psql.Quote(categoryTable, "budget_id").EQ(psql.Arg(budgetID))),
		sm.OrderBy(psql.Quote(categoryTable, "group_id")).Asc(),
		sm.OrderBy(psql.Quote(categoryTable, "sort")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Category]())
}

// ListGroups returns all category groups for a budget in sort order.
func (r *Reader) ListGroups(ctx context.Context, budgetID uuid.UUID) ([]*Group, error) {
	q := psql.Select(
		sm.Columns(
			psql.Quote(groupTable, "id"),
			psql.Quote(groupTable, "budget_id"),
			psql.Quote(groupTable, "name"),
			psql.Quote(groupTable, "sort"),
			psql.Quote(groupTable, "hidden"),
			psql.Quote(groupTable, "is_income"),
		),
		sm.From(groupTable),
		sm.Where(psql.Quote(groupTable, "budget_id").EQ(psql.Arg(budgetID))),
		sm.OrderBy(psql.Quote(groupTable, "sort")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Group]())
}

// FindGroupByName retrieves a group by name. Returns nil when absent.
func (r *Reader) FindGroupByName(ctx context.Context, budgetID uuid.UUID, name string) (*Group, error) {
	q := psql.Select(
		sm.Columns(
			psql.Quote(groupTable, "id"),
			psql.Quote(groupTable, "budget_id"),
			psql.Quote(groupTable, "name"),
			psql.Quote(groupTable, "sort"),
			psql.Quote(groupTable, "hidden"),
			psql.Quote(groupTable, "is_income"),
		),
		sm.From(groupTable),
		sm.Where(psql.Quote(groupTable, "budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote(groupTable, "name").EQ(psql.Arg(name))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Group]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindIncomeCategory returns the Ready-to-Assign pseudo-category, the single
// category inside the budget's income group.
func (r *Reader) FindIncomeCategory(ctx context.Context, budgetID uuid.UUID) (*Category, error) {
	return r.one(ctx,
		sm.InnerJoin(groupTable).OnEQ(
			psql.Quote(groupTable, "id"), psql.Quote(categoryTable, "group_id")),
		sm.Where(psql.Quote(categoryTable, "budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote(groupTable, "is_income").EQ(psql.Arg(true))),
	)
}

// FindPaymentCategory returns the payment category linked to a credit account.
// Returns nil for accounts without one.
func (r *Reader) FindPaymentCategory(ctx context.Context, accountID uuid.UUID) (*Category, error) {
	return r.one(ctx, sm.Where(psql.Quote(categoryTable, "linked_account_id").EQ(psql.Arg(accountID))))
}
