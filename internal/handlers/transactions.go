package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ashishsoni123/eagle-bank-api/internal/httputil"
	"github.com/ashishsoni123/eagle-bank-api/internal/middleware"
	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

type createTransactionRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"required,oneof=GBP"`
	Type      string          `json:"type" validate:"required"`
	Reference string          `json:"reference"`
}

type listTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// amountOK enforces the wire-format rule: positive, at most two decimal
// places, at most eight integer digits. The ledger re-asserts positivity
// itself; the digit limits are purely an input-shape concern.
func amountOK(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	if amount.Exponent() < -2 {
		return false
	}
	return len(amount.Truncate(0).String()) <= 8
}

func (a *API) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}
	if !amountOK(req.Amount) {
		httputil.WriteValidationError(w, []httputil.FieldError{
			{Field: "Amount", Message: "must be greater than 0 with up to 2 decimal places"},
		})
		return
	}

	callerID, _ := middleware.CallerID(r.Context())
	txn, err := a.ledger.Post(r.Context(), chi.URLParam(r, "accountNumber"), callerID,
		req.Amount, req.Type, req.Currency, req.Reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, txn)
}

func (a *API) ListTransactions(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	txns, err := a.ledger.List(r.Context(), chi.URLParam(r, "accountNumber"), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	httputil.WriteJSON(w, http.StatusOK, listTransactionsResponse{Transactions: txns})
}

func (a *API) GetTransaction(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	txn, err := a.ledger.Get(r.Context(), chi.URLParam(r, "transactionId"),
		chi.URLParam(r, "accountNumber"), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txn)
}
