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

// CreateTransferBody is the request body fields for creating a transfer.
type CreateTransferBody struct {
	BudgetID      string `json:"budgetID" required:"true" doc:"Budget UUID"`
	FromAccountID string `json:"fromAccountID" required:"true" doc:"Source account UUID"`
	ToAccountID   string `json:"toAccountID" required:"true" doc:"Destination account UUID"`
	Date          string `json:"date" required:"true" doc:"Transfer date, YYYY-MM-DD"`
	Memo          string `json:"memo,omitempty" doc:"Memo"`
	Amount        string `json:"amount" required:"true" doc:"Positive decimal amount to move"`
	Cleared       string `json:"cleared,omitempty" doc:"Initial cleared state of both legs: uncleared|cleared, defaults to uncleared"`
}

// CreateTransferInput is the Huma input for creating a transfer.
type CreateTransferInput struct {
	Body CreateTransferBody
}

// CreateTransferResponse carries the IDs of the two created legs.
type CreateTransferResponse struct {
	FromTransactionID string `json:"fromTransactionID" doc:"Outflow leg UUID"`
	ToTransactionID   string `json:"toTransactionID" doc:"Inflow leg UUID"`
}

// CreateTransferOutput is the response for creating a transfer.
type CreateTransferOutput struct {
	Status int
	Body   CreateTransferResponse
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	Operator actionProcessor
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(op actionProcessor) *CreateTransferHandler {
	return &CreateTransferHandler{Operator: op}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Create a transfer",
		Description: "Creates the linked outflow and inflow legs of a transfer between two accounts. Transfer legs carry no category and never touch the budget.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransferInput(input *CreateTransferInput) (*actions.CreateTransfer, error) {
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	fromAccountID, err := parseUUID(input.Body.FromAccountID, "fromAccountID")
	if err != nil {
		return nil, err
	}
	toAccountID, err := parseUUID(input.Body.ToAccountID, "toAccountID")
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

	return &actions.CreateTransfer{
		BudgetID:      budgetID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Date:          date,
		Memo:          input.Body.Memo,
		Amount:        amount,
		Cleared:       cleared,
	}, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransferInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransferMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to create transfer")
	}

	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body: CreateTransferResponse{
			FromTransactionID: action.FromTransactionID.String(),
			ToTransactionID:   action.ToTransactionID.String(),
		},
	}, nil
}
