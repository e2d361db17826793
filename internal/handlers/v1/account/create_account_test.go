package account

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-ledger/internal/money"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	storageaccount "github.com/carson-networks/budget-ledger/internal/storage/account"
)

// mockOperator is a mock for actionProcessor.
type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// newCreateTestAPI registers the handler against a humatest API and returns it.
func newCreateTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(op).Register(api)
	return api
}

// -- parseCreateAccountInput unit tests --

func TestParseCreateAccountInput_ValidInput(t *testing.T) {
	budgetID := uuid.Must(uuid.NewV4())

	input := &CreateAccountInput{
		Body: CreateAccountBody{
			BudgetID:        budgetID.String(),
			Name:            "Checking",
			Type:            "checking",
			StartingBalance: "123.45",
		},
	}

	action, err := parseCreateAccountInput(input)
	assert.NoError(t, err)
	assert.Equal(t, budgetID, action.BudgetID)
	assert.Equal(t, "Checking", action.Name)
	assert.Equal(t, storageaccount.AccountTypeChecking, action.Type)
	assert.Equal(t, money.Milliunit(123450), action.StartingBalance)
}

func TestParseCreateAccountInput_DefaultsBalanceToZero(t *testing.T) {
	input := &CreateAccountInput{
		Body: CreateAccountBody{
			BudgetID: uuid.Must(uuid.NewV4()).String(),
			Name:     "Wallet",
			Type:     "cash",
		},
	}

	action, err := parseCreateAccountInput(input)
	assert.NoError(t, err)
	assert.Equal(t, money.Milliunit(0), action.StartingBalance)
}

func TestParseCreateAccountInput_InvalidType(t *testing.T) {
	input := &CreateAccountInput{
		Body: CreateAccountBody{
			BudgetID: uuid.Must(uuid.NewV4()).String(),
			Name:     "Mystery",
			Type:     "brokerage",
		},
	}

	_, err := parseCreateAccountInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateAccount_Success(t *testing.T) {
	budgetID := uuid.Must(uuid.NewV4())
	createdID := uuid.Must(uuid.NewV4())

	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreateAccount)
		return ok && create.BudgetID == budgetID && create.Type == storageaccount.AccountTypeCredit
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateAccount).CreatedID = createdID
	}).Return(nil)

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{
		BudgetID: budgetID.String(),
		Name:     "Card",
		Type:     "credit",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, createdID.String(), body.ID)
	op.AssertExpectations(t)
}

func TestHTTP_CreateAccount_BadBudgetID(t *testing.T) {
	op := new(mockOperator)

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{
		BudgetID: "not-a-uuid",
		Name:     "Checking",
		Type:     "checking",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	op.AssertNotCalled(t, "Process")
}
