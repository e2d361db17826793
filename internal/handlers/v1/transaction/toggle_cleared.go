package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// ToggleClearedBody is the request body for toggling a transaction's cleared state.
type ToggleClearedBody struct {
	BudgetID  string `json:"budgetID" required:"true" doc:"Budget UUID"`
	AccountID string `json:"accountID" required:"true" doc:"Account UUID"`
}

// ToggleClearedInput is the Huma input for toggling a transaction's cleared state.
type ToggleClearedInput struct {
	TransactionID string `path:"transactionID" doc:"Transaction UUID"`
	Body          ToggleClearedBody
}

// ToggleClearedOutput is the response for toggling a transaction's cleared state.
type ToggleClearedOutput struct {
	Status int
}

// ToggleClearedHandler handles POST /v1/transaction/{transactionID}/toggle-cleared.
type ToggleClearedHandler struct {
	Operator actionProcessor
}

// NewToggleClearedHandler creates a new ToggleClearedHandler.
func NewToggleClearedHandler(op actionProcessor) *ToggleClearedHandler {
	return &ToggleClearedHandler{Operator: op}
}

// Register registers the toggle cleared endpoint with the Huma API.
func (h *ToggleClearedHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "toggle-cleared",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/{transactionID}/toggle-cleared",
		Summary:     "Toggle a transaction's cleared state",
		Description: "Flips a transaction between Uncleared and Cleared, moving its amount between the account's uncleared and cleared balances. Reconciled transactions reject the toggle.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ToggleClearedHandler) handle(ctx context.Context, input *ToggleClearedInput) (*ToggleClearedOutput, error) {
	logData := logging.GetLogData(ctx)

	transactionID, err := parseUUID(input.TransactionID, "transactionID")
	if err != nil {
		return nil, err
	}
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	accountID, err := parseUUID(input.Body.AccountID, "accountID")
	if err != nil {
		return nil, err
	}

	action := &actions.ToggleCleared{
		BudgetID:      budgetID,
		TransactionID: transactionID,
		AccountID:     accountID,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("toggleClearedMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to toggle cleared state")
	}

	return &ToggleClearedOutput{Status: http.StatusNoContent}, nil
}
