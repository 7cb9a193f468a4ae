package importer

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/utils"
)

// UploadHandler accepts a multipart spreadsheet, spools it, creates the job
// and dispatches processing. With ?sync=true the import runs inline and the
// full summary comes back in the response.
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	phID, err := uuid.Parse(r.FormValue("policyholder_id"))
	if err != nil {
		http.Error(w, "Invalid policyholder_id", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		http.Error(w, "Unsupported file type "+ext, http.StatusBadRequest)
		return
	}

	jobID := uuid.New()
	spooled := filepath.Join(spoolDir, jobID.String()+ext)
	dst, err := os.Create(spooled)
	if err != nil {
		http.Error(w, "Failed to spool file", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		http.Error(w, "Failed to spool file", http.StatusInternalServerError)
		return
	}
	dst.Close()

	actor, _ := utils.GetUserIDFromContext(r.Context())
	job := ImportJob{
		ID:             jobID,
		PolicyHolderID: phID,
		FileName:       header.Filename,
		SourcePath:     spooled,
		Status:         JobQueued,
		AuditUserID:    actor,
	}
	if err := db.DB.Create(&job).Error; err != nil {
		http.Error(w, "Failed to create import job", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("sync") == "true" {
		summary, err := Orch.RunSync(job.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
		return
	}

	go Orch.Run(job.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"job_id": job.ID.String(),
		"status": JobQueued,
	})
}

func JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var job ImportJob
	if err := db.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "Import job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

func JobListHandler(w http.ResponseWriter, r *http.Request) {
	q := db.DB.Model(&ImportJob{})
	if ph := r.URL.Query().Get("policyholder_id"); ph != "" {
		q = q.Where("policy_holder_id = ?", ph)
	}

	var jobs []ImportJob
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}
