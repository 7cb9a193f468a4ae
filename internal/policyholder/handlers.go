package policyholder

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/external"
	"github.com/CamuDigital/PH-Backend/internal/utils"
)

// Side-effect clients, wired in main. Defaults are no-ops so handlers work
// unconfigured and in tests.
var (
	Erp     external.ErpClient  = external.NopErpClient{}
	Folders external.FolderSink = external.NopFolderSink{}
)

func ListHandler(w http.ResponseWriter, r *http.Request) {
	var phs []PolicyHolder
	if err := db.DB.Where("is_deleted = ?", false).Order("code").Find(&phs).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(phs)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var ph PolicyHolder
	err := db.DB.Where("id = ? AND is_deleted = ?", id, false).First(&ph).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Policyholder not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ph)
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var ph PolicyHolder
	if err := json.NewDecoder(r.Body).Decode(&ph); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if ph.Code == "" || ph.TradeName == "" {
		http.Error(w, "Code and trade name are required", http.StatusBadRequest)
		return
	}

	var existing PolicyHolder
	if err := db.DB.First(&existing, "code = ?", ph.Code).Error; err == nil {
		http.Error(w, "Policyholder code already exists", http.StatusConflict)
		return
	}

	ph.ID = uuid.New()
	ph.IsDeleted = false
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		ph.AuditUserID = userID
	}

	if err := db.DB.Create(&ph).Error; err != nil {
		http.Error(w, "Failed to create policyholder", http.StatusInternalServerError)
		return
	}

	// Best-effort side effects: the record exists either way.
	if err := Erp.SyncPolicyHolder(r.Context(), syncPayload(ph)); err != nil {
		logrus.WithError(err).WithField("policyholder", ph.Code).Warn("erp sync failed")
	}
	if err := Folders.CreateFolder(r.Context(), ph.AuditUserID, "policyholder", ph.ID.String(), ph.TradeName); err != nil {
		logrus.WithError(err).WithField("policyholder", ph.Code).Warn("dms folder creation failed")
	}

	w.WriteHeader(http.StatusCreated)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ph)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var ph PolicyHolder
	if err := db.DB.Where("id = ? AND is_deleted = ?", id, false).First(&ph).Error; err != nil {
		http.Error(w, "Policyholder not found", http.StatusNotFound)
		return
	}

	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Code and ID are immutable.
	delete(input, "id")
	delete(input, "code")

	if err := db.DB.Model(&ph).Updates(input).Error; err != nil {
		http.Error(w, "Failed to update policyholder", http.StatusInternalServerError)
		return
	}

	if err := Erp.SyncPolicyHolder(r.Context(), syncPayload(ph)); err != nil {
		logrus.WithError(err).WithField("policyholder", ph.Code).Warn("erp sync failed")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ph)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var ph PolicyHolder
	if err := db.DB.Where("id = ? AND is_deleted = ?", id, false).First(&ph).Error; err != nil {
		http.Error(w, "Policyholder not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Model(&ph).Update("is_deleted", true).Error; err != nil {
		http.Error(w, "Failed to delete policyholder", http.StatusInternalServerError)
		return
	}

	payload := syncPayload(ph)
	payload.Deleted = true
	if err := Erp.SyncPolicyHolder(r.Context(), payload); err != nil {
		logrus.WithError(err).WithField("policyholder", ph.Code).Warn("erp sync failed")
	}

	w.WriteHeader(http.StatusNoContent)
}

func AttachBundleHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		BundleCode string `json:"bundle_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.BundleCode == "" {
		http.Error(w, "bundle_code is required", http.StatusBadRequest)
		return
	}

	var ph PolicyHolder
	if err := db.DB.Where("id = ? AND is_deleted = ?", id, false).First(&ph).Error; err != nil {
		http.Error(w, "Policyholder not found", http.StatusNotFound)
		return
	}

	var bundle ContributionPlanBundle
	if err := db.DB.First(&bundle, "code = ?", input.BundleCode).Error; err != nil {
		http.Error(w, "Bundle not found", http.StatusNotFound)
		return
	}

	now := time.Now()

	// End-date the current attachment before adding the new one.
	db.DB.Model(&PolicyHolderContributionPlanBundle{}).
		Where("policy_holder_id = ? AND date_valid_to IS NULL", ph.ID).
		Update("date_valid_to", now)

	link := PolicyHolderContributionPlanBundle{
		ID:                       uuid.New(),
		PolicyHolderID:           ph.ID,
		ContributionPlanBundleID: bundle.ID,
		DateValidFrom:            now,
	}
	if err := db.DB.Create(&link).Error; err != nil {
		http.Error(w, "Failed to attach bundle", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(link)
}

func ListInsureesHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var memberships []PolicyHolderInsuree
	err := db.DB.Where("policy_holder_id = ? AND is_deleted = ?", id, false).
		Order("date_valid_from").Find(&memberships).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(memberships)
}

func syncPayload(ph PolicyHolder) external.PolicyHolderSync {
	return external.PolicyHolderSync{
		Code:      ph.Code,
		TradeName: ph.TradeName,
		Email:     ph.Email,
		Phone:     ph.Phone,
		Address:   ph.Address,
		Deleted:   ph.IsDeleted,
	}
}
