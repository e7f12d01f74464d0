// Package handlers shapes HTTP requests and responses around the service
// layer. Nothing here touches storage directly; domain errors are mapped
// onto status codes in exactly one place.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ashishsoni123/eagle-bank-api/internal/httputil"
	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

type API struct {
	users    *service.UserService
	accounts *service.AccountService
	ledger   *service.LedgerService
	auth     *service.AuthService
	validate *validator.Validate
}

func New(users *service.UserService, accounts *service.AccountService, ledger *service.LedgerService, auth *service.AuthService) *API {
	return &API{
		users:    users,
		accounts: accounts,
		ledger:   ledger,
		auth:     auth,
		validate: validator.New(),
	}
}

// decodeAndValidate parses the JSON body into v and runs its validate
// tags. On failure the response has already been written.
func (a *API) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := a.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]httputil.FieldError, 0, len(verrs))
			for _, e := range verrs {
				details = append(details, httputil.FieldError{
					Field:   e.Field(),
					Message: validationMessage(e),
				})
			}
			httputil.WriteValidationError(w, details)
			return false
		}
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a phone number in E.164 format"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// writeServiceError is the single mapping from domain errors to HTTP
// status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		httputil.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTransactionType),
		errors.Is(err, service.ErrCurrencyMismatch):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientFunds):
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrDuplicateEmail):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	default:
		logger.Log.Error("unexpected service error", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
