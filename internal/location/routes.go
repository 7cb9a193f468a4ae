package location

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", ListVillagesHandler)
	r.Get("/lookup", LookupVillageHandler)

	return r
}

func ListVillagesHandler(w http.ResponseWriter, r *http.Request) {
	var villages []Village
	if err := db.DB.Order("code").Find(&villages).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(villages)
}

func LookupVillageHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "Missing query parameter q", http.StatusBadRequest)
		return
	}

	v, err := FindVillage(db.DB, q)
	if err != nil {
		http.Error(w, "Village not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
