package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Writer is the unit of work handed to compound operations. All entity writers
// share one transaction; the operation either commits everything or nothing.
// Tests construct it directly with in-memory fakes.
type Writer struct {
	tx           bob.Tx
	Accounts     account.IAccountWriter
	Categories   category.ICategoryWriter
	Transactions transaction.ITransactionWriter
	Ledger       ledger.ILedgerWriter
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:           tx,
		Accounts:     account.NewWriter(tx),
		Categories:   category.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Ledger:       ledger.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
