package importer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

// Job statuses.
const (
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// ImportJob tracks one asynchronous import run. Progress columns are
// rewritten after every row so status polling stays current.
type ImportJob struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PolicyHolderID uuid.UUID `gorm:"type:uuid;not null;index" json:"policyholder_id"`
	FileName       string    `json:"file_name"`
	SourcePath     string    `json:"-"`
	Status         string    `gorm:"default:'queued';index" json:"status"`
	TotalRows      int       `json:"total_rows"`
	ProcessedRows  int       `json:"processed_rows"`
	SuccessCount   int       `json:"success_count"`
	ErrorCount     int       `json:"error_count"`
	Results        db.JSONB  `gorm:"type:jsonb;default:'[]'" json:"results"`
	ErrorMessage   string    `json:"error_message,omitempty"`

	AuditUserID string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (ImportJob) TableName() string { return "importer.import_jobs" }

func markProcessing(tx *gorm.DB, jobID uuid.UUID, totalRows int) error {
	now := time.Now()
	return tx.Model(&ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     JobProcessing,
		"total_rows": totalRows,
		"started_at": now,
	}).Error
}

func updateProgress(tx *gorm.DB, jobID uuid.UUID, processed, success, errors int) error {
	return tx.Model(&ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"processed_rows": processed,
		"success_count":  success,
		"error_count":    errors,
	}).Error
}

func markCompleted(tx *gorm.DB, jobID uuid.UUID, results []RowResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	now := time.Now()
	return tx.Model(&ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":       JobCompleted,
		"results":      db.JSONB(data),
		"completed_at": now,
	}).Error
}

func markFailed(tx *gorm.DB, jobID uuid.UUID, message string) error {
	now := time.Now()
	return tx.Model(&ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":        JobFailed,
		"error_message": message,
		"completed_at":  now,
	}).Error
}
