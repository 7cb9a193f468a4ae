package changerequest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/utils"
)

func ListHandler(w http.ResponseWriter, r *http.Request) {
	q := db.DB.Model(&CategoryChangeRequest{})

	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if ph := r.URL.Query().Get("policyholder_id"); ph != "" {
		q = q.Where("policy_holder_id = ?", ph)
	}

	var requests []CategoryChangeRequest
	if err := q.Order("created_at").Find(&requests).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CategoryChangeRequest
	if err := db.DB.First(&req, "id = ?", id).Error; err != nil {
		http.Error(w, "Change request not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// ApproveHandler resolves an open request and applies the new category to
// the insuree's attribute bag.
func ApproveHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CategoryChangeRequest
	if err := db.DB.First(&req, "id = ?", id).Error; err != nil {
		http.Error(w, "Change request not found", http.StatusNotFound)
		return
	}
	if !isOpen(req.Status) {
		http.Error(w, "Change request already resolved", http.StatusConflict)
		return
	}

	actor, _ := utils.GetUserIDFromContext(r.Context())

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var person insuree.Insuree
		if err := tx.First(&person, "id = ?", req.InsureeID).Error; err != nil {
			return err
		}

		ext := insuree.DecodeExt(person.Ext)
		ext.EnrollmentCategory = req.NewCategory
		updates := map[string]interface{}{
			"ext":           insuree.EncodeExt(ext),
			"audit_user_id": actor,
		}
		if err := tx.Model(&person).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(&req).Updates(map[string]interface{}{
			"status":        StatusApproved,
			"audit_user_id": actor,
			"updated_at":    time.Now(),
		}).Error
	})
	if err != nil {
		logrus.WithError(err).WithField("request", req.Code).Error("approve change request failed")
		http.Error(w, "Failed to approve change request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func RejectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CategoryChangeRequest
	if err := db.DB.First(&req, "id = ?", id).Error; err != nil {
		http.Error(w, "Change request not found", http.StatusNotFound)
		return
	}
	if !isOpen(req.Status) {
		http.Error(w, "Change request already resolved", http.StatusConflict)
		return
	}

	actor, _ := utils.GetUserIDFromContext(r.Context())
	err := db.DB.Model(&req).Updates(map[string]interface{}{
		"status":        StatusRejected,
		"audit_user_id": actor,
	}).Error
	if err != nil {
		http.Error(w, "Failed to reject change request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func isOpen(status string) bool {
	for _, s := range OpenStatuses {
		if s == status {
			return true
		}
	}
	return false
}
