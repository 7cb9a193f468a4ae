package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// upsertMembership creates or updates the policyholder↔insuree link. The
// update is skipped entirely when nothing differs, which is what makes
// re-imports report "Aucun changement".
func (o *Orchestrator) upsertMembership(person *insuree.Insuree, ph *policyholder.PolicyHolder, bundle *policyholder.ContributionPlanBundle, row ImportRow, actor string) (string, error) {
	newExt := insuree.Ext{
		Income:         row.Income,
		EmployerNumber: row.EmployerNumber,
	}
	ext := insuree.EncodeExt(newExt)

	var existing policyholder.PolicyHolderInsuree
	err := o.db.Where("insuree_id = ? AND policy_holder_id = ? AND is_deleted = ?",
		person.ID, ph.ID, false).First(&existing).Error
	if err == nil {
		changed := existing.ContributionPlanBundleID != bundle.ID ||
			existing.EmployerNumber != row.EmployerNumber ||
			!insuree.DecodeExt(existing.Ext).Equal(newExt)
		if !changed {
			return StatusNoChange, nil
		}

		updates := map[string]interface{}{
			"contribution_plan_bundle_id": bundle.ID,
			"employer_number":             row.EmployerNumber,
			"ext":                         ext,
			"audit_user_id":               actor,
		}
		if err := o.db.Model(&existing).Updates(updates).Error; err != nil {
			return "", fmt.Errorf("update membership: %w", err)
		}
		return StatusSuccess, nil
	}
	if !isNotFound(err) {
		return "", err
	}

	membership := policyholder.PolicyHolderInsuree{
		ID:                       uuid.New(),
		PolicyHolderID:           ph.ID,
		InsureeID:                person.ID,
		ContributionPlanBundleID: bundle.ID,
		EmployerNumber:           row.EmployerNumber,
		Ext:                      ext,
		DateValidFrom:            time.Now(),
		AuditUserID:              actor,
	}
	if err := o.db.Create(&membership).Error; err != nil {
		return "", fmt.Errorf("create membership: %w", err)
	}
	return StatusSuccess, nil
}

// deleteMembership handles rows flagged for removal: the person is resolved
// by identifier only (never created) and their active membership under this
// policyholder is soft-deleted and end-dated.
func (o *Orchestrator) deleteMembership(row ImportRow, ph *policyholder.PolicyHolder, actor string) (string, error) {
	person, err := findByIdentifiers(o.db, row)
	if err != nil {
		return "", err
	}
	if person == nil {
		return StatusNotFound, nil
	}

	var membership policyholder.PolicyHolderInsuree
	err = o.db.Where("insuree_id = ? AND policy_holder_id = ? AND is_deleted = ?",
		person.ID, ph.ID, false).First(&membership).Error
	if err != nil {
		if isNotFound(err) {
			return StatusNotFound, nil
		}
		return "", err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_deleted":    true,
		"date_valid_to": now,
		"audit_user_id": actor,
	}
	if err := o.db.Model(&membership).Updates(updates).Error; err != nil {
		return "", fmt.Errorf("soft-delete membership: %w", err)
	}
	return StatusDeleted, nil
}
