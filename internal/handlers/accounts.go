package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashishsoni123/eagle-bank-api/internal/httputil"
	"github.com/ashishsoni123/eagle-bank-api/internal/middleware"
	"github.com/ashishsoni123/eagle-bank-api/internal/models"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

type createBankAccountRequest struct {
	Name        string `json:"name" validate:"required"`
	AccountType string `json:"accountType" validate:"required,oneof=personal"`
}

type updateBankAccountRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"accountType" validate:"omitempty,oneof=personal"`
}

type listBankAccountsResponse struct {
	Accounts []models.BankAccount `json:"accounts"`
}

func (a *API) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createBankAccountRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	callerID, _ := middleware.CallerID(r.Context())
	account, err := a.accounts.Open(r.Context(), callerID, req.Name, req.AccountType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, account)
}

func (a *API) ListAccounts(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	accounts, err := a.accounts.List(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if accounts == nil {
		accounts = []models.BankAccount{}
	}
	httputil.WriteJSON(w, http.StatusOK, listBankAccountsResponse{Accounts: accounts})
}

func (a *API) GetAccount(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	account, err := a.accounts.Get(r.Context(), chi.URLParam(r, "accountNumber"), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (a *API) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateBankAccountRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	callerID, _ := middleware.CallerID(r.Context())
	account, err := a.accounts.Update(r.Context(), chi.URLParam(r, "accountNumber"), callerID, service.AccountPatch{
		Name:        req.Name,
		AccountType: req.AccountType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (a *API) CloseAccount(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	if err := a.accounts.Close(r.Context(), chi.URLParam(r, "accountNumber"), callerID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
