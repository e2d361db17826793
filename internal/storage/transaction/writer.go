package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ ITransactionWriter = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate retrieves a transaction and locks its row. Returns nil
// when absent.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(table,
			"id", "budget_id", "account_id", "category_id", "date", "payee",
			"memo", "amount", "cleared", "transfer_transaction_id", "flag"),
		im.Values(psql.Arg(id, create.BudgetID, create.AccountID, create.CategoryID,
			create.Date, create.Payee, create.Memo, create.Amount, create.Cleared,
			create.TransferTransactionID, create.Flag)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update rewrites the mutable fields of a transaction row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	q := psql.Update(
		um.Table(table),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("date").ToArg(update.Date),
		um.SetCol("payee").ToArg(update.Payee),
		um.SetCol("memo").ToArg(update.Memo),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("cleared").ToArg(update.Cleared),
		um.SetCol("transfer_transaction_id").ToArg(update.TransferTransactionID),
		um.SetCol("flag").ToArg(update.Flag),
		um.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes a transaction row.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// MarkClearedReconciled locks in every Cleared row of the account as
// Reconciled and returns the number of rows flipped.
func (w *Writer) MarkClearedReconciled(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("cleared").ToArg(StateReconciled),
		um.Where(psql.Quote(table, "account_id").EQ(psql.Arg(accountID))),
		um.Where(psql.Quote(table, "cleared").EQ(psql.Arg(StateCleared))),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
