package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
)

// minimumAge returns the age floor for a canonical category. The student
// comparison is an exact, case-sensitive string match; historical behavior,
// kept as-is.
func (o *Orchestrator) minimumAge(category string) int {
	if category == o.cfg.StudentCategory {
		return o.cfg.StudentMinimumAge
	}
	return o.cfg.MinimumAge
}

func ageErrorMessage(min int) string {
	return fmt.Sprintf("Erreur: L'âge minimum requis est de %d ans", min)
}

// findByIdentifiers looks a person up by primary then secondary identifier.
// Returns nil without error when neither matches.
func findByIdentifiers(tx *gorm.DB, row ImportRow) (*insuree.Insuree, error) {
	var person insuree.Insuree

	if row.CamuNumber != "" {
		err := tx.First(&person, "camu_number = ?", row.CamuNumber).Error
		if err == nil {
			return &person, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if row.TempCamuNumber != "" {
		err := tx.First(&person, "temp_camu_number = ?", row.TempCamuNumber).Error
		if err == nil {
			return &person, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

// resolveInsuree finds or creates the person for a row. The returned reject
// message is non-empty exactly when the row must be recorded as KO; the
// person is still returned alongside an age rejection so callers keep the
// context.
func (o *Orchestrator) resolveInsuree(row ImportRow, village *location.Village, category, actor string) (*insuree.Insuree, bool, string, error) {
	minAge := o.minimumAge(category)
	now := time.Now()

	person, err := findByIdentifiers(o.db, row)
	if err != nil {
		return nil, false, "", err
	}
	if person != nil {
		if insuree.AgeAt(person.Dob, now) < minAge {
			return person, false, ageErrorMessage(minAge), nil
		}
		return person, false, "", nil
	}

	// New-person request.
	if row.Dob.IsZero() {
		return nil, false, StatusInvalidDob, nil
	}
	if insuree.AgeAt(row.Dob, now) < minAge {
		return nil, false, ageErrorMessage(minAge), nil
	}

	if !row.HasIdentifier() {
		// Walk-in registration: refuse to silently duplicate a person who
		// matches on name and birthdate and carries no legacy identifier.
		dup, err := findUnidentifiedDuplicate(o.db, row)
		if err != nil {
			return nil, false, "", err
		}
		if dup {
			return nil, false, StatusDuplicate, nil
		}
	}

	person = &insuree.Insuree{
		ID:          uuid.New(),
		LastName:    row.LastName,
		FirstName:   row.FirstName,
		Dob:         row.Dob,
		Gender:      row.Gender,
		CivilStatus: row.CivilStatus,
		Phone:       row.Phone,
		Email:       row.Email,
		Address:     row.Address,
		Status:      insuree.StatusPreRegistered,
		AuditUserID: actor,
	}
	person.Ext = insuree.EncodeExt(insuree.Ext{
		EnrollmentCategory: category,
		Income:             row.Income,
		EmployerNumber:     row.EmployerNumber,
	})

	if row.CamuNumber != "" {
		camu := row.CamuNumber
		person.CamuNumber = &camu
	} else {
		if village == nil {
			return nil, false, StatusUnknownVillage, nil
		}
		generated, err := o.idGen.Generate(row.Gender, village, row.Dob, category)
		if err != nil {
			return nil, false, "", fmt.Errorf("generate camu number: %w", err)
		}
		person.CamuNumber = &generated
	}
	if row.TempCamuNumber != "" {
		temp := row.TempCamuNumber
		person.TempCamuNumber = &temp
	}

	if err := o.db.Create(person).Error; err != nil {
		return nil, false, "", fmt.Errorf("create insuree: %w", err)
	}

	// Side actions on creation are best-effort: the person exists either way.
	ctx := context.Background()
	if err := o.folders.CreateFolder(ctx, actor, "insuree", person.ID.String(), *person.CamuNumber); err != nil {
		o.log.WithError(err).WithField("camu", *person.CamuNumber).Warn("dms folder creation failed")
	}
	if err := o.notifier.Notify(ctx, "insuree.created", person); err != nil {
		o.log.WithError(err).WithField("camu", *person.CamuNumber).Warn("creation notification failed")
	}
	if err := o.notifier.Notify(ctx, "insuree.verification_requested", person); err != nil {
		o.log.WithError(err).WithField("camu", *person.CamuNumber).Warn("identity verification registration failed")
	}

	return person, true, "", nil
}

// findUnidentifiedDuplicate reports an existing person with identical name
// fields and birthdate who carries no legacy identifier.
func findUnidentifiedDuplicate(tx *gorm.DB, row ImportRow) (bool, error) {
	var count int64
	err := tx.Model(&insuree.Insuree{}).
		Where("last_name = ? AND first_name = ? AND dob = ?", row.LastName, row.FirstName, row.Dob).
		Where("temp_camu_number IS NULL OR temp_camu_number = ''").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
