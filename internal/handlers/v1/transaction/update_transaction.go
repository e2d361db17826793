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

// UpdateTransactionBody is the request body fields for updating a transaction.
// The cleared state is not part of an update; it changes only through the
// toggle and reconciliation endpoints.
type UpdateTransactionBody struct {
	BudgetID   string `json:"budgetID" required:"true" doc:"Budget UUID"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID, empty to uncategorize; ignored on transfer legs"`
	Date       string `json:"date" required:"true" doc:"Transaction date, YYYY-MM-DD"`
	Payee      string `json:"payee,omitempty" doc:"Payee"`
	Memo       string `json:"memo,omitempty" doc:"Memo"`
	Amount     string `json:"amount" required:"true" doc:"Signed decimal amount, inflow positive, outflow negative"`
	Flag       string `json:"flag,omitempty" doc:"Flag color"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	TransactionID string `path:"transactionID" doc:"Transaction UUID"`
	Body          UpdateTransactionBody
}

// UpdateTransactionOutput is the response for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// UpdateTransactionHandler handles PUT /v1/transaction/{transactionID}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{transactionID}",
		Summary:     "Update a transaction",
		Description: "Rewrites a transaction's mutable fields and refreshes every affected month. Editing one leg of a transfer mirrors the amount and date to the peer leg. Reconciled transactions reject updates.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (*actions.UpdateTransaction, error) {
	transactionID, err := parseUUID(input.TransactionID, "transactionID")
	if err != nil {
		return nil, err
	}
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
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

	return &actions.UpdateTransaction{
		BudgetID:      budgetID,
		TransactionID: transactionID,
		CategoryID:    categoryID,
		Date:          date,
		Payee:         input.Body.Payee,
		Memo:          input.Body.Memo,
		Amount:        amount,
		Flag:          input.Body.Flag,
	}, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
