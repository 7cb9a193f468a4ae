package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
)

var ErrUnknownVillage = errors.New("unknown village")

// resolveFamily returns the household a person belongs to, creating one with
// the person as head when none exists. Creation requires a resolved village.
func (o *Orchestrator) resolveFamily(person *insuree.Insuree, village *location.Village, category, address, actor string) (*insuree.Family, bool, error) {
	if person.FamilyID != nil {
		var fam insuree.Family
		err := o.db.First(&fam, "id = ?", *person.FamilyID).Error
		if err == nil && fam.Status == insuree.FamilyActive {
			return &fam, false, nil
		}
		if err != nil && !isNotFound(err) {
			return nil, false, err
		}
		// Suspended or dangling family reference: fall through and create.
	}

	if village == nil {
		return nil, false, ErrUnknownVillage
	}

	// One active family per (head, village): link up instead of creating a
	// second one when an earlier row already made this person a head here.
	var existing insuree.Family
	err := o.db.Where("head_insuree_id = ? AND village_id = ? AND status = ?",
		person.ID, village.ID, insuree.FamilyActive).First(&existing).Error
	if err == nil {
		return o.attachToFamily(person, &existing, true, actor)
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	fam := insuree.Family{
		ID:            uuid.New(),
		HeadInsureeID: person.ID,
		VillageID:     village.ID,
		Address:       address,
		Status:        insuree.FamilyActive,
		AuditUserID:   actor,
	}
	fam.Ext = insuree.EncodeExt(insuree.Ext{EnrollmentCategory: category})

	if err := o.db.Create(&fam).Error; err != nil {
		return nil, false, fmt.Errorf("create family: %w", err)
	}

	f, _, err := o.attachToFamily(person, &fam, true, actor)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func (o *Orchestrator) attachToFamily(person *insuree.Insuree, fam *insuree.Family, head bool, actor string) (*insuree.Family, bool, error) {
	updates := map[string]interface{}{
		"family_id":     fam.ID,
		"head":          head,
		"audit_user_id": actor,
	}
	if err := o.db.Model(person).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("attach insuree to family: %w", err)
	}
	famID := fam.ID
	person.FamilyID = &famID
	person.Head = head
	return fam, false, nil
}
