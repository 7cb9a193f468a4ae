package importer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CamuDigital/PH-Backend/internal/changerequest"
	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

// detectCategoryChange compares a person's stored enrollment category with
// the category implied by the row and opens the matching change request.
// Every failure here is best-effort from the row's point of view: the caller
// logs the error and continues with the membership upsert.
func (o *Orchestrator) detectCategoryChange(row ImportRow, ph *policyholder.PolicyHolder, newCategory, actor string) (bool, error) {
	person, err := findByIdentifiers(o.db, row)
	if err != nil {
		return false, err
	}
	if person == nil {
		return false, nil
	}

	open, err := changerequest.HasOpen(o.db, person.ID)
	if err != nil {
		return false, err
	}
	if open {
		return false, nil
	}

	oldCategory := insuree.DecodeExt(person.Ext).EnrollmentCategory

	var fam *insuree.Family
	if person.FamilyID != nil {
		var f insuree.Family
		if err := o.db.First(&f, "id = ?", *person.FamilyID).Error; err == nil {
			fam = &f
		} else if !isNotFound(err) {
			return false, err
		}
	}

	req := changerequest.CategoryChangeRequest{
		Code:           changerequest.GenerateCode(ph.Code, time.Now()),
		InsureeID:      person.ID,
		PolicyHolderID: ph.ID,
		OldCategory:    oldCategory,
		NewCategory:    newCategory,
		AuditUserID:    actor,
		Payload:        categoryChangePayload(row),
	}

	switch {
	case fam == nil:
		// No household at all: standalone individuals always go through the
		// individual workflow.
		req.RequestType = changerequest.TypeIndividual
	case person.Head:
		if newCategory == oldCategory {
			return false, nil
		}
		req.RequestType = changerequest.TypeSelfHead
		req.Status = changerequest.StatusWaitingForDocument
	default:
		// Dependents always open a request, even without a category change.
		req.RequestType = changerequest.TypeDependent
	}

	if _, err := changerequest.Open(o.db, req); err != nil {
		return false, err
	}

	if req.RequestType == changerequest.TypeDependent && newCategory == o.cfg.StudentCategory && fam != nil {
		var head insuree.Insuree
		if err := o.db.First(&head, "id = ?", fam.HeadInsureeID).Error; err == nil {
			if err := o.notifier.Notify(context.Background(), "changerequest.dependent_student", head); err != nil {
				o.log.WithError(err).WithField("request", req.Code).Warn("head notification failed")
			}
		}
	}

	return true, nil
}

func categoryChangePayload(row ImportRow) db.JSONB {
	payload := map[string]interface{}{}
	if row.Income != nil {
		payload["income"] = row.Income
	}
	if row.EmployerNumber != "" {
		payload["employer_number"] = row.EmployerNumber
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return db.JSONB("{}")
	}
	return db.JSONB(data)
}
