package policyholder

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CamuDigital/PH-Backend/internal/auth"
	"github.com/CamuDigital/PH-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/", ListHandler)
	r.Get("/{id}", GetHandler)
	r.Get("/{id}/insurees", ListInsureesHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/", CreateHandler)
		r.Patch("/{id}", UpdateHandler)
		r.Delete("/{id}", DeleteHandler)
		r.Post("/{id}/bundle", AttachBundleHandler)
	})

	return r
}
