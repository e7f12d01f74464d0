package handlers

import (
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/ashishsoni123/eagle-bank-api/internal/httputil"
	"github.com/ashishsoni123/eagle-bank-api/internal/middleware"
	"github.com/ashishsoni123/eagle-bank-api/internal/models"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

type addressRequest struct {
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2"`
	Line3    string `json:"line3"`
	Town     string `json:"town" validate:"required"`
	County   string `json:"county" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
}

func (a addressRequest) model() models.Address {
	return models.Address{
		Line1:    a.Line1,
		Line2:    a.Line2,
		Line3:    a.Line3,
		Town:     a.Town,
		County:   a.County,
		Postcode: a.Postcode,
	}
}

type createUserRequest struct {
	Name        string         `json:"name" validate:"required"`
	Address     addressRequest `json:"address"`
	PhoneNumber string         `json:"phoneNumber" validate:"required,e164"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	Name        string          `json:"name"`
	Address     *addressRequest `json:"address"`
	PhoneNumber string          `json:"phoneNumber" validate:"omitempty,e164"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Password    string          `json:"password" validate:"omitempty,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// passwordOK mirrors the registration rule: letters and digits only, at
// least one of each. Length is covered by the validate tag.
func passwordOK(p string) bool {
	var hasLetter, hasDigit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

func (a *API) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}
	if !passwordOK(req.Password) {
		httputil.WriteValidationError(w, []httputil.FieldError{
			{Field: "Password", Message: "must contain both letters and numbers"},
		})
		return
	}

	user, err := a.users.Create(r.Context(), service.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.PhoneNumber,
		Password: req.Password,
		Address:  req.Address.model(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	user, err := a.users.Get(r.Context(), chi.URLParam(r, "userId"), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (a *API) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}
	if req.Password != "" && !passwordOK(req.Password) {
		httputil.WriteValidationError(w, []httputil.FieldError{
			{Field: "Password", Message: "must contain both letters and numbers"},
		})
		return
	}

	patch := service.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.PhoneNumber,
		Password: req.Password,
	}
	if req.Address != nil {
		addr := req.Address.model()
		patch.Address = &addr
	}

	callerID, _ := middleware.CallerID(r.Context())
	user, err := a.users.Update(r.Context(), chi.URLParam(r, "userId"), callerID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.CallerID(r.Context())
	if err := a.users.Delete(r.Context(), chi.URLParam(r, "userId"), callerID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, http.StatusForbidden, "invalid email or password")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}
