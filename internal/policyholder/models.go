package policyholder

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

type PolicyHolder struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string     `gorm:"uniqueIndex;not null" json:"code"`
	TradeName    string     `gorm:"not null" json:"trade_name"`
	ContactName  string     `json:"contact_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	VillageID    *uuid.UUID `gorm:"type:uuid" json:"village_id,omitempty"`
	ActivityCode string     `json:"activity_code"`
	LegalForm    string     `json:"legal_form"`
	Bank         db.JSONB   `gorm:"type:jsonb;default:'{}'" json:"bank"`
	IsDeleted    bool       `gorm:"default:false;index" json:"is_deleted"`

	AuditUserID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PolicyHolder) TableName() string { return "policyholder.policyholders" }

type ContributionPlan struct {
	ID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code string          `gorm:"uniqueIndex;not null" json:"code"`
	Name string          `gorm:"not null" json:"name"`
	Rate decimal.Decimal `gorm:"type:numeric(8,5)" json:"rate"`
}

func (ContributionPlan) TableName() string { return "policyholder.contribution_plans" }

type ContributionPlanBundle struct {
	ID    uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Code  string             `gorm:"uniqueIndex;not null" json:"code"`
	Name  string             `gorm:"not null" json:"name"`
	Plans []ContributionPlan `gorm:"many2many:policyholder.bundle_plans;" json:"plans"`
}

func (ContributionPlanBundle) TableName() string { return "policyholder.contribution_plan_bundles" }

// PolicyHolderContributionPlanBundle attaches a bundle to a policyholder for
// a validity window.
type PolicyHolderContributionPlanBundle struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PolicyHolderID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"policyholder_id"`
	ContributionPlanBundleID uuid.UUID  `gorm:"type:uuid;not null" json:"contribution_plan_bundle_id"`
	DateValidFrom            time.Time  `json:"date_valid_from"`
	DateValidTo              *time.Time `json:"date_valid_to,omitempty"`
}

func (PolicyHolderContributionPlanBundle) TableName() string {
	return "policyholder.policyholder_bundles"
}

// PolicyHolderInsuree links an insuree to a policyholder under a bundle.
// Removal is a soft delete: IsDeleted flips and DateValidTo is stamped.
type PolicyHolderInsuree struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PolicyHolderID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"policyholder_id"`
	InsureeID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"insuree_id"`
	ContributionPlanBundleID uuid.UUID  `gorm:"type:uuid;not null" json:"contribution_plan_bundle_id"`
	EmployerNumber           string     `json:"employer_number"`
	Ext                      db.JSONB   `gorm:"type:jsonb;default:'{}'" json:"ext"`
	IsDeleted                bool       `gorm:"default:false;index" json:"is_deleted"`
	DateValidFrom            time.Time  `json:"date_valid_from"`
	DateValidTo              *time.Time `json:"date_valid_to,omitempty"`

	AuditUserID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PolicyHolderInsuree) TableName() string { return "policyholder.policyholder_insurees" }

var ErrNoBundle = errors.New("No contribution plan bundle found for policyholder")

// ActiveBundle returns the bundle currently attached to the policyholder.
func ActiveBundle(tx *gorm.DB, policyHolderID uuid.UUID) (*ContributionPlanBundle, error) {
	var link PolicyHolderContributionPlanBundle
	err := tx.Where("policy_holder_id = ? AND date_valid_to IS NULL", policyHolderID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoBundle
		}
		return nil, err
	}

	var bundle ContributionPlanBundle
	if err := tx.First(&bundle, "id = ?", link.ContributionPlanBundleID).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

// FindByCode resolves a non-deleted policyholder by its unique code.
func FindByCode(tx *gorm.DB, code string) (*PolicyHolder, error) {
	var ph PolicyHolder
	err := tx.Where("code = ? AND is_deleted = ?", code, false).First(&ph).Error
	if err != nil {
		return nil, err
	}
	return &ph, nil
}
