package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// CreateTransactionBody is the request body fields for creating a transaction.
type CreateTransactionBody struct {
	BudgetID   string `json:"budgetID" required:"true" doc:"Budget UUID"`
	AccountID  string `json:"accountID" required:"true" doc:"Account UUID"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID, empty for an uncategorized row"`
	Date       string `json:"date" required:"true" doc:"Transaction date, YYYY-MM-DD"`
	Payee      string `json:"payee,omitempty" doc:"Payee"`
	Memo       string `json:"memo,omitempty" doc:"Memo"`
	Amount     string `json:"amount" required:"true" doc:"Signed decimal amount, inflow positive, outflow negative"`
	Cleared    string `json:"cleared,omitempty" doc:"Initial cleared state: uncleared|cleared, defaults to uncleared"`
	Flag       string `json:"flag,omitempty" doc:"Flag color"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the response for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create a transaction",
		Description: "Records a transaction, updates the account balances, and refreshes the affected month's budget state in one unit of work.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	accountID, err := parseUUID(input.Body.AccountID, "accountID")
	if err != nil {
		return nil, err
	}
	categoryID, err := parseOptionalUUID(input.Body.CategoryID, "categoryID")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.Body.Date)
	if err != nil {
		return nil, err
	}
	amount, err := money.ParseString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	cleared, err := parseClearedState(input.Body.Cleared)
	if err != nil {
		return nil, err
	}

	return &actions.CreateTransaction{
		BudgetID:   budgetID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       date,
		Payee:      input.Body.Payee,
		Memo:       input.Body.Memo,
		Amount:     amount,
		Cleared:    cleared,
		Flag:       input.Body.Flag,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", action.CreatedID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.CreatedID.String()},
	}, nil
}
