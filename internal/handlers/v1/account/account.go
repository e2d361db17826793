package account

import (
	"time"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// Account is the API response model for an account.
// It is used only for responses, not for request bodies.
type Account struct {
	ID               string `json:"id" doc:"Account UUID"`
	Name             string `json:"name" doc:"Account name"`
	Type             string `json:"type" doc:"Account type: checking|savings|cash|credit|tracking"`
	Balance          string `json:"balance" doc:"Decimal running balance"`
	ClearedBalance   string `json:"clearedBalance" doc:"Decimal cleared balance"`
	UnclearedBalance string `json:"unclearedBalance" doc:"Decimal uncleared balance"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAccountResponse(acc *account.Account) Account {
	return Account{
		ID:               acc.ID.String(),
		Name:             acc.Name,
		Type:             string(acc.Type),
		Balance:          acc.Balance.String(),
		ClearedBalance:   acc.ClearedBalance.String(),
		UnclearedBalance: acc.UnclearedBalance.String(),
		CreatedAt:        acc.CreatedAt.Format(time.RFC3339),
	}
}

func validAccountType(s string) bool {
	switch account.AccountType(s) {
	case account.AccountTypeChecking, account.AccountTypeSavings,
		account.AccountTypeCash, account.AccountTypeCredit, account.AccountTypeTracking:
		return true
	}
	return false
}
