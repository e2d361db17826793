package budgeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// CategoryMonth is one category row on the budget screen.
type CategoryMonth struct {
	ID           string `json:"id" doc:"Category UUID"`
	Name         string `json:"name" doc:"Category name"`
	Assigned     string `json:"assigned" doc:"Decimal assigned this month"`
	Activity     string `json:"activity" doc:"Signed decimal activity this month"`
	Available    string `json:"available" doc:"Decimal available, carryover included"`
	Overspending string `json:"overspending,omitempty" doc:"Overspending label when available is negative: cash|credit"`
}

// CategoryGroup is a group of category rows on the budget screen.
type CategoryGroup struct {
	ID         string          `json:"id" doc:"Group UUID"`
	Name       string          `json:"name" doc:"Group name"`
	Hidden     bool            `json:"hidden" doc:"Whether the group is hidden"`
	Categories []CategoryMonth `json:"categories" doc:"Category rows in the group"`
}

// ReadyToAssign decomposes the Ready-to-Assign figure. The three parts sum to total.
type ReadyToAssign struct {
	LeftoverFromPriorMonths string `json:"leftoverFromPriorMonths" doc:"Decimal income minus assignments through the prior month, less carried cash overspending"`
	IncomeThisMonth         string `json:"incomeThisMonth" doc:"Decimal income recorded this month"`
	AssignedThisMonth       string `json:"assignedThisMonth" doc:"Decimal assigned this month"`
	Total                   string `json:"total" doc:"Decimal Ready-to-Assign"`
}

// GetMonthInput is the Huma input for the budget month screen.
type GetMonthInput struct {
	Month    string `path:"month" doc:"Budget month, YYYY-MM"`
	BudgetID string `query:"budgetID" required:"true" doc:"Budget UUID"`
}

// GetMonthResponseBody is the response body for the budget month screen.
type GetMonthResponseBody struct {
	Month         string          `json:"month" doc:"Budget month, YYYY-MM"`
	Groups        []CategoryGroup `json:"groups" doc:"Category groups with their rows, income group excluded"`
	ReadyToAssign ReadyToAssign   `json:"readyToAssign" doc:"Ready-to-Assign breakdown"`
}

// GetMonthOutput is the response for the budget month screen.
type GetMonthOutput struct {
	Body GetMonthResponseBody
}

type monthReader interface {
	GetMonth(ctx context.Context, budgetID uuid.UUID, month budget.Month) (*service.MonthView, error)
}

// GetMonthHandler handles GET /v1/budget/month/{month}.
type GetMonthHandler struct {
	BudgetService monthReader
}

// NewGetMonthHandler creates a new GetMonthHandler.
func NewGetMonthHandler(svc monthReader) *GetMonthHandler {
	return &GetMonthHandler{BudgetService: svc}
}

// Register registers the get month endpoint with the Huma API.
func (h *GetMonthHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-month",
		Method:      http.MethodGet,
		Path:        "/v1/budget/month/{month}",
		Summary:     "Get the budget month screen",
		Description: "Returns every category's assigned, activity, and available for a month, with overspending labels and the Ready-to-Assign breakdown.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetMonthHandler) handle(ctx context.Context, input *GetMonthInput) (*GetMonthOutput, error) {
	logData := logging.GetLogData(ctx)

	budgetID, err := parseUUID(input.BudgetID, "budgetID")
	if err != nil {
		return nil, err
	}
	month, err := parseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getMonthMs")
	}
	view, err := h.BudgetService.GetMonth(ctx, budgetID, month)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to load budget month")
	}

	resp := GetMonthResponseBody{
		Month:  view.Month.String(),
		Groups: make([]CategoryGroup, len(view.Groups)),
		ReadyToAssign: ReadyToAssign{
			LeftoverFromPriorMonths: view.ReadyToAssign.LeftoverFromPriorMonths.String(),
			IncomeThisMonth:         view.ReadyToAssign.IncomeThisMonth.String(),
			AssignedThisMonth:       view.ReadyToAssign.AssignedThisMonth.String(),
			Total:                   view.ReadyToAssign.Total.String(),
		},
	}

	for i, group := range view.Groups {
		out := CategoryGroup{
			ID:         group.Group.ID.String(),
			Name:       group.Group.Name,
			Hidden:     group.Group.Hidden,
			Categories: make([]CategoryMonth, len(group.Categories)),
		}
		for j, cat := range group.Categories {
			out.Categories[j] = CategoryMonth{
				ID:           cat.Category.ID.String(),
				Name:         cat.Category.Name,
				Assigned:     cat.Assigned.String(),
				Activity:     cat.Activity.String(),
				Available:    cat.Available.String(),
				Overspending: cat.Overspending.String(),
			}
		}
		resp.Groups[i] = out
	}

	if logData != nil {
		logData.AddData("groupCount", len(resp.Groups))
	}

	return &GetMonthOutput{Body: resp}, nil
}
