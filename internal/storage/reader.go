package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Reader bundles the per-entity read interfaces. Outside a transaction it runs
// against the connection pool; inside one, the Writer embeds a Reader bound to
// the transaction.
type Reader struct {
	Accounts     account.IAccountReader
	Categories   category.ICategoryReader
	Transactions transaction.ITransactionReader
	Ledger       ledger.ILedgerReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Categories:   category.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Ledger:       ledger.NewReader(exec),
	}
}
