package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/money"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ IAccountWriter = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate retrieves an account and locks its row for the duration of
// the transaction. Returns nil when absent.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		selectColumns(),
		sm.From(table),
		sm.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new account and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(table, "id", "budget_id", "name", "type", "balance", "cleared_balance", "uncleared_balance"),
		im.Values(psql.Arg(id, create.BudgetID, create.Name, string(create.Type),
			create.Balance, create.ClearedBalance, create.UnclearedBalance)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBalances writes all three balance aggregates in one statement so the
// cleared + uncleared = balance invariant never straddles statements.
func (w *Writer) UpdateBalances(ctx context.Context, id uuid.UUID, balance, cleared, uncleared money.Milliunit) error {
	q := psql.Update(
		um.Table(table),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("cleared_balance").ToArg(cleared),
		um.SetCol("uncleared_balance").ToArg(uncleared),
		um.Where(psql.Quote(table, "id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
