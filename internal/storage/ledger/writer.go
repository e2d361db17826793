package ledger

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ ILedgerWriter = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Upsert writes the (category, month) row. An all-zero triple deletes the row
// instead: ghost rows are never persisted.
func (w *Writer) Upsert(ctx context.Context, entry *Entry) error {
	if entry.IsGhost() {
		return w.delete(ctx, entry)
	}

	update := psql.Update(
		um.Table(table),
		um.SetCol("assigned").ToArg(entry.Assigned),
		um.SetCol("activity").ToArg(entry.Activity),
		um.SetCol("available").ToArg(entry.Available),
		um.Where(psql.Quote(table, "category_id").EQ(psql.Arg(entry.CategoryID))),
		um.Where(psql.Quote(table, "month").EQ(psql.Arg(entry.Month))),
	)
	result, err := bob.Exec(ctx, w.tx, update)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	insert := psql.Insert(
		im.Into(table, "budget_id", "category_id", "month", "assigned", "activity", "available"),
		im.Values(psql.Arg(entry.BudgetID, entry.CategoryID, entry.Month,
			entry.Assigned, entry.Activity, entry.Available)),
	)
	_, err = bob.Exec(ctx, w.tx, insert)
	return err
}

func (w *Writer) delete(ctx context.Context, entry *Entry) error {
	q := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote(table, "category_id").EQ(psql.Arg(entry.CategoryID))),
		dm.Where(psql.Quote(table, "month").EQ(psql.Arg(entry.Month))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
