package changerequest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CamuDigital/PH-Backend/internal/auth"
	"github.com/CamuDigital/PH-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/", ListHandler)
		r.Get("/{id}", GetHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))
		r.Post("/{id}/approve", ApproveHandler)
		r.Post("/{id}/reject", RejectHandler)
	})

	return r
}
