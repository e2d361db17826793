package budgeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

func parseUUID(s, field string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

func parseMonth(s string) (budget.Month, error) {
	month, err := budget.ParseMonth(s)
	if err != nil {
		return "", huma.NewError(http.StatusBadRequest, "invalid month, expected YYYY-MM", err)
	}
	return month, nil
}

// actionProcessor runs an action through the operator's unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
