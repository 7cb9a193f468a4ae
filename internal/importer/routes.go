package importer

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
		r.Post("/upload", UploadHandler)
		r.Get("/jobs", JobListHandler)
		r.Get("/jobs/{id}", JobStatusHandler)
	})

	return r
}
