package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// GetReconciliationInput is the Huma input for the reconciliation preview.
type GetReconciliationInput struct {
	AccountID string `path:"accountID" doc:"Account UUID"`
	BudgetID  string `query:"budgetID" required:"true" doc:"Budget UUID"`
}

// GetReconciliationResponse is what the client shows before the user confirms
// against a bank statement.
type GetReconciliationResponse struct {
	ClearedBalance      string `json:"clearedBalance" doc:"Decimal cleared balance to confirm against the bank"`
	PendingClearedCount int64  `json:"pendingClearedCount" doc:"Number of Cleared transactions a reconciliation would lock"`
}

// GetReconciliationOutput is the response for the reconciliation preview.
type GetReconciliationOutput struct {
	Body GetReconciliationResponse
}

// ReconcileBody is the request body for confirming a reconciliation.
type ReconcileBody struct {
	BudgetID    string `json:"budgetID" required:"true" doc:"Budget UUID"`
	BankBalance string `json:"bankBalance" required:"true" doc:"Decimal balance reported by the bank"`
}

// ReconcileInput is the Huma input for confirming a reconciliation.
type ReconcileInput struct {
	AccountID string `path:"accountID" doc:"Account UUID"`
	Body      ReconcileBody
}

// ReconcileResponse reports the reconciliation outcome. A mismatch is a normal
// outcome, not an error: nothing was mutated and the difference is returned.
type ReconcileResponse struct {
	Reconciled      bool   `json:"reconciled" doc:"True when the bank balance matched and transactions were locked"`
	Difference      string `json:"difference" doc:"Signed decimal difference bank minus cleared, zero on match"`
	ReconciledCount int64  `json:"reconciledCount" doc:"Number of transactions moved to the Reconciled state"`
}

// ReconcileOutput is the response for confirming a reconciliation.
type ReconcileOutput struct {
	Body ReconcileResponse
}

type reconciliationReader interface {
	GetReconciliationInfo(ctx context.Context, budgetID, accountID uuid.UUID) (*service.ReconciliationInfo, error)
}

// ReconciliationHandler handles the two-step reconciliation workflow:
// GET previews the cleared balance, POST confirms against the bank figure.
type ReconciliationHandler struct {
	Service  reconciliationReader
	Operator actionProcessor
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(svc reconciliationReader, op actionProcessor) *ReconciliationHandler {
	return &ReconciliationHandler{Service: svc, Operator: op}
}

// Register registers the reconciliation endpoints with the Huma API.
func (h *ReconciliationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-reconciliation",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountID}/reconciliation",
		Summary:     "Preview a reconciliation",
		Description: "Returns the cleared balance to confirm against the bank and the count of transactions a reconciliation would lock.",
		Tags:        []string{"Accounts"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "reconcile-account",
		Method:      http.MethodPost,
		Path:        "/v1/account/{accountID}/reconciliation",
		Summary:     "Reconcile an account",
		Description: "Compares the bank balance to the cleared balance. On a match every Cleared transaction is locked as Reconciled; on a mismatch nothing changes and the difference is reported.",
		Tags:        []string{"Accounts"},
	}, h.handlePost)
}

func (h *ReconciliationHandler) handleGet(ctx context.Context, input *GetReconciliationInput) (*GetReconciliationOutput, error) {
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	budgetID, err := uuid.FromString(input.BudgetID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budgetID", err)
	}

	info, err := h.Service.GetReconciliationInfo(ctx, budgetID, accountID)
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to load reconciliation info")
	}

	return &GetReconciliationOutput{
		Body: GetReconciliationResponse{
			ClearedBalance:      info.ClearedBalance.String(),
			PendingClearedCount: info.PendingClearedCount,
		},
	}, nil
}

func parseReconcileInput(input *ReconcileInput) (*actions.ReconcileAccount, error) {
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	budgetID, err := uuid.FromString(input.Body.BudgetID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budgetID", err)
	}
	bankBalance, err := money.ParseString(input.Body.BankBalance)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid bankBalance", err)
	}

	return &actions.ReconcileAccount{
		BudgetID:    budgetID,
		AccountID:   accountID,
		BankBalance: bankBalance,
	}, nil
}

func (h *ReconciliationHandler) handlePost(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseReconcileInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("reconcileMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err, "failed to reconcile account")
	}

	if logData != nil {
		logData.AddData("mismatch", action.Result.Mismatch)
	}

	return &ReconcileOutput{
		Body: ReconcileResponse{
			Reconciled:      !action.Result.Mismatch,
			Difference:      action.Result.Difference.String(),
			ReconciledCount: action.Result.ReconciledCount,
		},
	}, nil
}
