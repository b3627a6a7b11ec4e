package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"

	"github.com/GCrispino/ledger/internal/database/repository"
	"github.com/GCrispino/ledger/internal/models"
	"github.com/GCrispino/ledger/internal/server"
	"github.com/GCrispino/ledger/internal/usecases/clients"
)

const clientBody = `{"name":"Ana Souza","birth_date":"15-01-1990","national_id":"111","address":"Rua A, 1"}`

func newTestServer(t *testing.T, rate limiter.Rate) *server.Server {
	t.Helper()
	uc := clients.NewClientUsecase(repository.NewClients(), nil, clients.Limits{
		WithdrawalLimit:      decimal.NewFromInt(500),
		WithdrawalCountLimit: 3,
	})
	return server.NewServer(uc, rate)
}

func defaultRate() limiter.Rate {
	rate, _ := limiter.NewRateFromFormatted("1000-S")
	return rate
}

func do(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestCreateClient(t *testing.T) {
	s := newTestServer(t, defaultRate())

	rec := do(t, s, http.MethodPost, "/clients", clientBody)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	var res models.ClientResponse
	decode(t, rec, &res)
	assert.Equal(t, "Ana Souza", res.Name)
	assert.Equal(t, "111", res.NationalID)

	rec = do(t, s, http.MethodPost, "/clients", clientBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/clients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.ClientResponse
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "111", listed[0].NationalID)
}

func TestCreateClient_Invalid(t *testing.T) {
	s := newTestServer(t, defaultRate())

	tests := []struct {
		name string
		body string
	}{
		{name: "missing fields", body: `{"name":"Ana"}`},
		{name: "bad birth date", body: `{"name":"Ana","birth_date":"1990-01-15","national_id":"111","address":"x"}`},
		{name: "non numeric id", body: `{"name":"Ana","birth_date":"15-01-1990","national_id":"abc","address":"x"}`},
		{name: "syntax error", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/clients", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAccounts(t *testing.T) {
	s := newTestServer(t, defaultRate())
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/clients", clientBody).Code)

	rec := do(t, s, http.MethodPost, "/clients/111/accounts", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var account models.AccountResponse
	decode(t, rec, &account)
	assert.Equal(t, 1, account.Number)
	assert.Equal(t, "0001", account.Branch)
	assert.Equal(t, "checking", account.Kind)

	rec = do(t, s, http.MethodGet, "/clients/111/accounts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []models.AccountResponse
	decode(t, rec, &accounts)
	assert.Len(t, accounts, 1)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/clients/404/accounts", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/clients/404/accounts", "").Code)
}

func TestTransactionsCheckingScenario(t *testing.T) {
	s := newTestServer(t, defaultRate())
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/clients", clientBody).Code)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/clients/111/accounts", "").Code)

	const path = "/clients/111/accounts/1/transactions"

	rec := do(t, s, http.MethodPost, path, `{"value":1000,"type":"c"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res models.CreateAccountTransactionResponse
	decode(t, rec, &res)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Balance))
	assert.Equal(t, 1, res.HistoryLength)

	rec = do(t, s, http.MethodPost, path, `{"value":600,"type":"d"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "exceeds limit")

	for i := 0; i < 3; i++ {
		rec = do(t, s, http.MethodPost, path, `{"value":"200","type":"d"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	decode(t, rec, &res)
	assert.True(t, decimal.NewFromInt(400).Equal(res.Balance))
	assert.Equal(t, 4, res.HistoryLength)

	rec = do(t, s, http.MethodPost, path, `{"value":50,"type":"d"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum number of withdrawals")

	rec = do(t, s, http.MethodGet, "/clients/111/accounts/1/statement", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var statement models.GetAccountStatementResponse
	decode(t, rec, &statement)
	assert.True(t, decimal.NewFromInt(400).Equal(statement.Balance.Total))
	require.Len(t, statement.Transactions, 4)
	assert.Equal(t, "Deposit", statement.Transactions[0].Kind)
	assert.Regexp(t, `^\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2}$`, statement.Transactions[0].Date)
}

func TestTransactions_Errors(t *testing.T) {
	s := newTestServer(t, defaultRate())
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/clients", clientBody).Code)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/clients/111/accounts", "").Code)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "invalid amount", path: "/clients/111/accounts/1/transactions", body: `{"value":-5,"type":"c"}`, status: http.StatusUnprocessableEntity},
		{name: "insufficient funds", path: "/clients/111/accounts/1/transactions", body: `{"value":5,"type":"d"}`, status: http.StatusUnprocessableEntity},
		{name: "unknown type", path: "/clients/111/accounts/1/transactions", body: `{"value":5,"type":"x"}`, status: http.StatusBadRequest},
		{name: "bad account number", path: "/clients/111/accounts/abc/transactions", body: `{"value":5,"type":"c"}`, status: http.StatusBadRequest},
		{name: "unknown account", path: "/clients/111/accounts/9/transactions", body: `{"value":5,"type":"c"}`, status: http.StatusNotFound},
		{name: "unknown client", path: "/clients/404/accounts/1/transactions", body: `{"value":5,"type":"c"}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := do(t, s, http.MethodGet, "/clients/111/accounts/1/statement", "")
	var statement models.GetAccountStatementResponse
	decode(t, rec, &statement)
	assert.Empty(t, statement.Transactions)
	assert.True(t, statement.Balance.Total.IsZero())
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	s := newTestServer(t, rate)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/clients/1/accounts", "").Code)
	rec := do(t, s, http.MethodGet, "/clients/1/accounts", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodGet, "/clients/1/accounts", "").Code)
}
