package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// applyBalanceDelta adds delta to the account's balance, routed into the
// cleared or uncleared bucket by the transaction's state, and persists all
// three aggregates together so cleared + uncleared = balance always holds.
func applyBalanceDelta(ctx context.Context, writer *storage.Writer, acc *account.Account, delta money.Milliunit, state transaction.ClearedState) error {
	acc.Balance += delta
	if state == transaction.StateUncleared {
		acc.UnclearedBalance += delta
	} else {
		acc.ClearedBalance += delta
	}
	return writer.Accounts.UpdateBalances(ctx, acc.ID, acc.Balance, acc.ClearedBalance, acc.UnclearedBalance)
}
