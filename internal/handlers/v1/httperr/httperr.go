// Package httperr maps engine errors onto client-facing HTTP statuses so the
// handlers all present the taxonomy the same way.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

// FromDomain converts an engine error to a huma error. Not-found becomes 404,
// a locked (reconciled) row 409, validation and financial-safety failures 422,
// and anything else the fallback 500.
func FromDomain(err error, fallback string) error {
	switch {
	case errors.Is(err, budget.ErrAccountNotFound),
		errors.Is(err, budget.ErrCategoryNotFound),
		errors.Is(err, budget.ErrTransactionNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, budget.ErrTransactionReconciled):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, budget.ErrNonPositiveAmount),
		errors.Is(err, budget.ErrSameCategory),
		errors.Is(err, budget.ErrNotTransfer),
		errors.Is(err, money.ErrNotFinite),
		errors.Is(err, money.ErrUnsafeNumber):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}
