package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	BudgetID string `query:"budgetID" required:"true" doc:"Budget UUID"`
}

// ListAccountsResponse is the response body for listing accounts.
type ListAccountsResponse struct {
	Accounts []Account `json:"accounts" doc:"Accounts belonging to the budget"`
}

// ListAccountsOutput is the response for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponse
}

type accountLister interface {
	ListAccounts(ctx context.Context, budgetID uuid.UUID) ([]*account.Account, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	Service accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{Service: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Lists all accounts of a budget with their running, cleared, and uncleared balances.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	budgetID, err := uuid.FromString(input.BudgetID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budgetID", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.Service.ListAccounts(ctx, budgetID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to list accounts")
	}

	response := ListAccountsResponse{Accounts: make([]Account, 0, len(accounts))}
	for _, acc := range accounts {
		response.Accounts = append(response.Accounts, toAccountResponse(acc))
	}

	if logData != nil {
		logData.AddData("accountCount", len(response.Accounts))
	}

	return &ListAccountsOutput{Body: response}, nil
}
