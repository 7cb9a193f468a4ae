package insuree

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CamuDigital/PH-Backend/internal/db"
)

// Insuree statuses. Imports create insurees as PRE_REGISTERED; approval and
// activation happen downstream.
const (
	StatusPreRegistered = "PRE_REGISTERED"
	StatusApproved      = "APPROVED"
	StatusActive        = "ACTIVE"
)

// Family statuses.
const (
	FamilyActive    = "ACTIVE"
	FamilySuspended = "SUSPENDED"
)

type Insuree struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CamuNumber     *string    `gorm:"uniqueIndex" json:"camu_number,omitempty"`
	TempCamuNumber *string    `gorm:"index" json:"temp_camu_number,omitempty"`
	LastName       string     `gorm:"not null" json:"last_name"`
	FirstName      string     `gorm:"not null" json:"first_name"`
	Dob            time.Time  `gorm:"not null" json:"dob"`
	Gender         string     `json:"gender"`
	CivilStatus    string     `json:"civil_status"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Address        string     `json:"address"`
	Status         string     `gorm:"default:'PRE_REGISTERED';index" json:"status"`
	FamilyID       *uuid.UUID `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Head           bool       `gorm:"default:false" json:"head"`
	Ext            db.JSONB   `gorm:"type:jsonb;default:'{}'" json:"ext"`

	// Audit
	AuditUserID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Insuree) TableName() string { return "insuree.insurees" }

type Family struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HeadInsureeID uuid.UUID `gorm:"type:uuid;not null;index" json:"head_insuree_id"`
	VillageID     uuid.UUID `gorm:"type:uuid;not null;index" json:"village_id"`
	Address       string    `json:"address"`
	Status        string    `gorm:"default:'ACTIVE';index" json:"status"`
	Ext           db.JSONB  `gorm:"type:jsonb;default:'{}'" json:"ext"`

	AuditUserID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Family) TableName() string { return "insuree.families" }

// Ext is the typed view of the insuree attribute bag: known fields are
// explicit, everything else rides in Extra.
type Ext struct {
	EnrollmentCategory string                 `json:"enrolment_category,omitempty"`
	Income             *decimal.Decimal       `json:"income,omitempty"`
	EmployerNumber     string                 `json:"employer_number,omitempty"`
	Extra              map[string]interface{} `json:"extra,omitempty"`
}

// Equal reports whether two attribute bags hold the same values. Stored
// bags must never be compared as raw bytes: the jsonb column type rewrites
// whitespace and numeric spellings on the way in. Income is compared
// numerically so "150.00" and "150" match.
func (e Ext) Equal(other Ext) bool {
	if e.EnrollmentCategory != other.EnrollmentCategory || e.EmployerNumber != other.EmployerNumber {
		return false
	}
	if (e.Income == nil) != (other.Income == nil) {
		return false
	}
	if e.Income != nil && !e.Income.Equal(*other.Income) {
		return false
	}
	return reflect.DeepEqual(e.Extra, other.Extra)
}

// DecodeExt parses an attribute bag; a missing or malformed bag decodes to
// the zero Ext.
func DecodeExt(raw db.JSONB) Ext {
	var e Ext
	if len(raw) == 0 {
		return e
	}
	_ = json.Unmarshal([]byte(raw), &e)
	return e
}

// EncodeExt serializes the attribute bag.
func EncodeExt(e Ext) db.JSONB {
	data, err := json.Marshal(e)
	if err != nil {
		return db.JSONB("{}")
	}
	return db.JSONB(data)
}
