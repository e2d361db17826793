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

// AssignBody is the request body fields for setting a category's assignment.
type AssignBody struct {
	BudgetID   string `json:"budgetID" required:"true" doc:"Budget UUID"`
	CategoryID string `json:"categoryID" required:"true" doc:"Category UUID"`
	Month      string `json:"month" required:"true" doc:"Budget month, YYYY-MM"`
	Assigned   string `json:"assigned" required:"true" doc:"New assigned decimal amount for the month"`
}

// AssignInput is the Huma input for setting a category's assignment.
type AssignInput struct {
	Body AssignBody
}

// AssignOutput is the response for setting a category's assignment.
type AssignOutput struct {
	Status int
}

// AssignHandler handles POST /v1/budget/assign.
type AssignHandler struct {
	Operator actionProcessor
}

// NewAssignHandler creates a new AssignHandler.
func NewAssignHandler(op actionProcessor) *AssignHandler {
	return &AssignHandler{Operator: op}
}

// Register registers the assign endpoint with the Huma API.
func (h *AssignHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "assign",
		Method:      http.MethodPost,
		Path:        "/v1/budget/assign",
		Summary:     "Set a category's assigned amount",
		Description: "Sets the assigned amount for a category and month. The month's available, and every later month's, shifts by the difference.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func parseAssignInput(input *AssignInput) (*actions.UpdateAssignment, error) {
	budgetID, err := parseUUID(input.Body.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	categoryID, err := parseUUID(input.Body.CategoryID, "categoryID")
	if err != nil {
		return nil, err
	}
	month, err := parseMonth(input.Body.Month)
	if err != nil {
		return nil, err
	}
	assigned, err := money.ParseString(input.Body.Assigned)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid assigned amount", err)
	}

	return &actions.UpdateAssignment{
		BudgetID:   budgetID,
		CategoryID: categoryID,
		Month:      month,
		Assigned:   assigned,
	}, nil
}

func (h *AssignHandler) handle(ctx context.Context, input *AssignInput) (*AssignOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseAssignInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("assignMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to update assignment")
	}

	return &AssignOutput{Status: http.StatusNoContent}, nil
}
