package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ ICategoryWriter = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new category and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(categoryTable, "id", "budget_id", "group_id", "name", "sort", "linked_account_id"),
		im.Values(psql.Arg(id, create.BudgetID, create.GroupID, create.Name, create.Sort, create.LinkedAccountID)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// InsertGroup creates a new category group and returns its generated ID.
func (w *Writer) InsertGroup(ctx context.Context, create *GroupCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(groupTable, "id", "budget_id", "name", "sort", "hidden", "is_income"),
		im.Values(psql.Arg(id, create.BudgetID, create.Name, create.Sort, create.Hidden, create.IsIncome)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
