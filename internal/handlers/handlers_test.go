package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ashishsoni123/eagle-bank-api/configs"
	"github.com/ashishsoni123/eagle-bank-api/internal/handlers"
	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
	"github.com/ashishsoni123/eagle-bank-api/internal/routes"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
	"github.com/ashishsoni123/eagle-bank-api/internal/store"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger.Init()
	configs.AppConfig.JWT.Secret = testSecret

	mem := store.NewMemory()
	users := service.NewUserService(mem)
	accounts := service.NewAccountService(mem, nil)
	ledger := service.NewLedgerService(mem, nil)
	auth := service.NewAuthService(mem, []byte(testSecret))

	api := handlers.New(users, accounts, ledger, auth)
	return routes.NewRoutes(api)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeInto(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func registerAndLogin(t *testing.T, h http.Handler, email string) (userID, token string) {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
		"name":        "Test User",
		"email":       email,
		"phoneNumber": "+441234567890",
		"password":    "password123",
		"address": map[string]string{
			"line1":    "1 High St",
			"town":     "London",
			"county":   "Greater London",
			"postcode": "E1 6AN",
		},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create user: %d %s", rr.Code, rr.Body.String())
	}
	var user struct {
		ID string `json:"id"`
	}
	decodeInto(t, rr, &user)

	rr = doJSON(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeInto(t, rr, &login)
	return user.ID, login.Token
}

func openAccount(t *testing.T, h http.Handler, token string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/v1/accounts", token, map[string]string{
		"name":        "Current Account",
		"accountType": "personal",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create account: %d %s", rr.Code, rr.Body.String())
	}
	var account struct {
		AccountNumber string `json:"accountNumber"`
	}
	decodeInto(t, rr, &account)
	return account.AccountNumber
}

func TestTransactionFlow(t *testing.T) {
	h := newTestServer(t)
	_, token := registerAndLogin(t, h, "jane@test.com")
	number := openAccount(t, h, token)

	txPath := fmt.Sprintf("/v1/accounts/%s/transactions", number)

	rr := doJSON(t, h, http.MethodPost, txPath, token, map[string]any{
		"amount": 100.00, "currency": "GBP", "type": "deposit", "reference": "payday",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("deposit: %d %s", rr.Code, rr.Body.String())
	}

	// Overdraw: business-state failure, 422, balance untouched.
	rr = doJSON(t, h, http.MethodPost, txPath, token, map[string]any{
		"amount": 150.00, "currency": "GBP", "type": "withdrawal",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("overdraw: %d, want 422", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, txPath, token, map[string]any{
		"amount": 40.00, "currency": "GBP", "type": "withdrawal",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("withdrawal: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodGet, "/v1/accounts/"+number, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get account: %d", rr.Code)
	}
	var account struct {
		Balance decimal.Decimal `json:"balance"`
	}
	decodeInto(t, rr, &account)
	if !account.Balance.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("balance = %s, want 60", account.Balance)
	}

	rr = doJSON(t, h, http.MethodGet, txPath, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list transactions: %d", rr.Code)
	}
	var list struct {
		Transactions []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"transactions"`
	}
	decodeInto(t, rr, &list)
	if len(list.Transactions) != 2 {
		t.Fatalf("listed %d transactions, want 2", len(list.Transactions))
	}
	if list.Transactions[0].Type != "deposit" || list.Transactions[1].Type != "withdrawal" {
		t.Fatalf("transactions out of order: %+v", list.Transactions)
	}

	rr = doJSON(t, h, http.MethodGet, txPath+"/"+list.Transactions[0].ID, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get transaction: %d", rr.Code)
	}
}

func TestTransactionValidation(t *testing.T) {
	h := newTestServer(t)
	_, token := registerAndLogin(t, h, "jane@test.com")
	number := openAccount(t, h, token)
	txPath := fmt.Sprintf("/v1/accounts/%s/transactions", number)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"negative amount", map[string]any{"amount": -5, "currency": "GBP", "type": "deposit"}, http.StatusBadRequest},
		{"zero amount", map[string]any{"amount": 0, "currency": "GBP", "type": "deposit"}, http.StatusBadRequest},
		{"three decimal places", map[string]any{"amount": 1.999, "currency": "GBP", "type": "deposit"}, http.StatusBadRequest},
		{"unsupported currency", map[string]any{"amount": 5, "currency": "USD", "type": "deposit"}, http.StatusBadRequest},
		{"unknown type", map[string]any{"amount": 5, "currency": "GBP", "type": "transfer"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodPost, txPath, token, tc.body)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestOwnershipOverHTTP(t *testing.T) {
	h := newTestServer(t)
	_, janeToken := registerAndLogin(t, h, "jane@test.com")
	_, johnToken := registerAndLogin(t, h, "john@test.com")
	number := openAccount(t, h, janeToken)

	// Another user's account must look like it does not exist.
	rr := doJSON(t, h, http.MethodGet, "/v1/accounts/"+number, johnToken, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("cross-user get: %d, want 404", rr.Code)
	}
	rr = doJSON(t, h, http.MethodPost, "/v1/accounts/"+number+"/transactions", johnToken, map[string]any{
		"amount": 10, "currency": "GBP", "type": "deposit",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("cross-user post: %d, want 404", rr.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/v1/accounts", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d, want 401", rr.Code)
	}
	rr = doJSON(t, h, http.MethodGet, "/v1/accounts", "not-a-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d, want 401", rr.Code)
	}
}

func TestDeleteUserConflict(t *testing.T) {
	h := newTestServer(t)
	userID, token := registerAndLogin(t, h, "jane@test.com")
	number := openAccount(t, h, token)

	rr := doJSON(t, h, http.MethodDelete, "/v1/users/"+userID, token, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("delete with open account: %d, want 409", rr.Code)
	}

	rr = doJSON(t, h, http.MethodDelete, "/v1/accounts/"+number, token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("close account: %d, want 204", rr.Code)
	}
	rr = doJSON(t, h, http.MethodDelete, "/v1/users/"+userID, token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete after close: %d, want 204", rr.Code)
	}
}
