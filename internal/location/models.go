package location

import (
	"github.com/google/uuid"
)

// Village is the leaf of the location hierarchy. The parent levels are kept
// denormalized on the row; the import pipeline only ever resolves villages.
type Village struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string    `gorm:"uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"not null" json:"name"`
	Municipality string    `json:"municipality"`
	District     string    `json:"district"`
	Region       string    `json:"region"`
}

func (Village) TableName() string { return "location.villages" }
