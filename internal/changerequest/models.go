package changerequest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

// Request statuses, in workflow order. The first four are "open": an insuree
// can hold at most one request in an open status at a time.
const (
	StatusPending            = "Pending"
	StatusWaitingForDocument = "Waiting_for_Document"
	StatusProcessing         = "Processing"
	StatusWaitingForApproval = "Waiting_for_Approval"
	StatusApproved           = "Approved"
	StatusRejected           = "Rejected"
)

// OpenStatuses are the non-terminal states.
var OpenStatuses = []string{
	StatusPending,
	StatusWaitingForDocument,
	StatusProcessing,
	StatusWaitingForApproval,
}

// Request types.
const (
	TypeSelfHead   = "SELF_HEAD_REQ"
	TypeDependent  = "DEPENDENT_REQ"
	TypeIndividual = "INDIVIDUAL_REQ"
)

// CategoryChangeRequest records a pending transition of an insuree's
// enrollment category.
type CategoryChangeRequest struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string         `gorm:"index" json:"code"`
	InsureeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"insuree_id"`
	PolicyHolderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"policyholder_id"`
	OldCategory    string         `json:"old_category"`
	NewCategory    string         `json:"new_category"`
	RequestType    string         `gorm:"not null" json:"request_type"`
	Status         string         `gorm:"default:'Pending';index" json:"status"`
	Documents      pq.StringArray `gorm:"type:text[]" json:"documents"`
	Payload        db.JSONB       `gorm:"type:jsonb;default:'{}'" json:"payload"`

	AuditUserID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CategoryChangeRequest) TableName() string { return "insuree.change_requests" }

// GenerateCode builds the request code from the policyholder code and the
// current date. There is no sequence component, so two requests for the same
// policyholder on the same day share a code.
func GenerateCode(policyHolderCode string, at time.Time) string {
	return fmt.Sprintf("CCR-%s-%s", policyHolderCode, at.Format("20060102"))
}

// HasOpen reports whether the insuree already has a request in one of the
// open statuses.
func HasOpen(tx *gorm.DB, insureeID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&CategoryChangeRequest{}).
		Where("insuree_id = ? AND status IN ?", insureeID, OpenStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Open creates a new request. Callers must have checked HasOpen first; the
// pipeline relies on that check rather than a database constraint.
func Open(tx *gorm.DB, req CategoryChangeRequest) (*CategoryChangeRequest, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	if err := tx.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("open change request: %w", err)
	}
	return &req, nil
}
