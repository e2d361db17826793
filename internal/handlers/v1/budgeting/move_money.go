package budgeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// MoveMoneyBody is the request body fields for moving money between categories.
type MoveMoneyBody struct {
	BudgetID         string `json:"budgetID" required:"true" doc:"Budget UUID"`
	SourceCategoryID string `json:"sourceCategoryID" required:"true" doc:"Category UUID to move from"`
	TargetCategoryID string `json:"targetCategoryID" required:"true" doc:"Category UUID to move to"`
	Month            string `json:"month" required:"true" doc:"Budget month, YYYY-MM"`
	Amount           string `json:"amount" required:"true" doc:"Positive decimal amount to move"`
}

// MoveMoneyInput is the Huma input for moving money between categories.
type MoveMoneyInput struct {
	Body MoveMoneyBody
}

// MoveMoneyOutput is the response for moving money between categories.
type MoveMoneyOutput struct {
	Status int
}

// MoveMoneyHandler handles POST /v1/budget/move.
type MoveMoneyHandler struct {
	Operator actionProcessor
}

// NewMoveMoneyHandler creates a new MoveMoneyHandler.
func NewMoveMoneyHandler(op actionProcessor) *MoveMoneyHandler {
	return &MoveMoneyHandler{Operator: op}
}

// Register registers the move money endpoint with the Huma API.
func (h *MoveMoneyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "move-money",
		Method:      http.MethodPost,
		Path:        "/v1/budget/move",
		Summary:     "Move money between categories",
		Description: "Moves assigned funds from one category to another in the same month. Zero-sum on assigned; the available change cascades through later months of both categories. The source may go negative.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func parseMoveMoneyInput(input *MoveMoneyInput) (*actions.MoveMoney, error) {
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	sourceCategoryID, err := parseUUID(input.Body.SourceCategoryID, "sourceCategoryID")
	if err != nil {
		return nil, err
	}
	targetCategoryID, err := parseUUID(input.Body.TargetCategoryID, "targetCategoryID")
	if err != nil {
		return nil, err
	}
	month, err := parseMonth(input.Body.Month)
	if err != nil {
		return nil, err
	}
	amount, err := money.ParseString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	return &actions.MoveMoney{
		BudgetID:         budgetID,
		SourceCategoryID: sourceCategoryID,
		TargetCategoryID: targetCategoryID,
		Month:            month,
		Amount:           amount,
	}, nil
}

func (h *MoveMoneyHandler) handle(ctx context.Context, input *MoveMoneyInput) (*MoveMoneyOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseMoveMoneyInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("moveMoneyMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to move money")
	}

	return &MoveMoneyOutput{Status: http.StatusNoContent}, nil
}
