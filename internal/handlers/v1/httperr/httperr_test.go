package httperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/budget"
	"github.com/carson-networks/budget-ledger/internal/money"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	return statusErr.GetStatus()
}

func TestFromDomain(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{budget.ErrAccountNotFound, http.StatusNotFound},
		{budget.ErrCategoryNotFound, http.StatusNotFound},
		{budget.ErrTransactionNotFound, http.StatusNotFound},
		{budget.ErrTransactionReconciled, http.StatusConflict},
		{budget.ErrNonPositiveAmount, http.StatusUnprocessableEntity},
		{budget.ErrSameCategory, http.StatusUnprocessableEntity},
		{budget.ErrNotTransfer, http.StatusUnprocessableEntity},
		{money.ErrNotFinite, http.StatusUnprocessableEntity},
		{money.ErrUnsafeNumber, http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, statusOf(t, FromDomain(tc.err, "fallback")), "%v", tc.err)
	}
}
