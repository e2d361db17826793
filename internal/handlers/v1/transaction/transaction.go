package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                    string `json:"id" doc:"Transaction UUID"`
	AccountID             string `json:"accountID" doc:"Account UUID"`
	CategoryID            string `json:"categoryID,omitempty" doc:"Category UUID, empty for transfers and uncategorized rows"`
	Date                  string `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	Payee                 string `json:"payee" doc:"Payee"`
	Memo                  string `json:"memo,omitempty" doc:"Memo"`
	Amount                string `json:"amount" doc:"Signed decimal amount, inflow positive"`
	Cleared               string `json:"cleared" doc:"Cleared state: uncleared|cleared|reconciled"`
	TransferTransactionID string `json:"transferTransactionID,omitempty" doc:"Peer leg UUID when the row is half of a transfer"`
	Flag                  string `json:"flag,omitempty" doc:"Flag color"`
	CreatedAt             string `json:"createdAt" doc:"RFC3339 creation time"`
}

const dateLayout = "2006-01-02"

func toTransactionResponse(tx *transaction.Transaction) Transaction {
	resp := Transaction{
		ID:        tx.ID.String(),
		AccountID: tx.AccountID.String(),
		Date:      tx.Date.Format(dateLayout),
		Payee:     tx.Payee,
		Memo:      tx.Memo,
		Amount:    tx.Amount.String(),
		Cleared:   clearedStateString(tx.Cleared),
		Flag:      tx.Flag,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		resp.CategoryID = tx.CategoryID.String()
	}
	if tx.TransferTransactionID != nil {
		resp.TransferTransactionID = tx.TransferTransactionID.String()
	}
	return resp
}

func clearedStateString(state transaction.ClearedState) string {
	switch state {
	case transaction.StateCleared:
		return "cleared"
	case transaction.StateReconciled:
		return "reconciled"
	default:
		return "uncleared"
	}
}

func parseClearedState(s string) (transaction.ClearedState, error) {
	switch s {
	case "", "uncleared":
		return transaction.StateUncleared, nil
	case "cleared":
		return transaction.StateCleared, nil
	case "reconciled":
		return transaction.StateReconciled, nil
	default:
		return 0, huma.NewError(http.StatusBadRequest, "invalid cleared state")
	}
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
	}
	return date, nil
}

func parseUUID(s, field string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

func parseOptionalUUID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseUUID(s, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// actionProcessor runs an action through the operator's unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
