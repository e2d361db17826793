package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	BudgetID        string `json:"budgetID" required:"true" doc:"Budget UUID"`
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            string `json:"type" required:"true" doc:"Account type: checking|savings|cash|credit|tracking"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance when account is created (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// actionProcessor runs an action through the operator's unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator actionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account. A credit account also gets its auto-generated payment category.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	budgetID, err := uuid.FromString(input.Body.BudgetID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budgetID", err)
	}

	if !validAccountType(input.Body.Type) {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account type")
	}

	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := money.ParseString(startingBalanceStr)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
	}

	return &actions.CreateAccount{
		BudgetID:        budgetID,
		Name:            input.Body.Name,
		Type:            account.AccountType(input.Body.Type),
		StartingBalance: startingBalance,
		Date:            time.Now(),
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", action.CreatedID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: action.CreatedID.String()},
	}, nil
}
