package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ashishsoni123/eagle-bank-api/internal/handlers"
	appmw "github.com/ashishsoni123/eagle-bank-api/internal/middleware"
)

func NewRoutes(api *handlers.API) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/users", api.CreateUser)
		r.Post("/auth/login", api.Login)

		r.Group(func(r chi.Router) {
			r.Use(appmw.Authenticated)

			r.Get("/users/{userId}", api.GetUser)
			r.Patch("/users/{userId}", api.UpdateUser)
			r.Delete("/users/{userId}", api.DeleteUser)

			r.Post("/accounts", api.CreateAccount)
			r.Get("/accounts", api.ListAccounts)
			r.Get("/accounts/{accountNumber}", api.GetAccount)
			r.Patch("/accounts/{accountNumber}", api.UpdateAccount)
			r.Delete("/accounts/{accountNumber}", api.CloseAccount)

			r.Post("/accounts/{accountNumber}/transactions", api.CreateTransaction)
			r.Get("/accounts/{accountNumber}/transactions", api.ListTransactions)
			r.Get("/accounts/{accountNumber}/transactions/{transactionId}", api.GetTransaction)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
