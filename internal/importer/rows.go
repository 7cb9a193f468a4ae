package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is the typed view of one normalized spreadsheet line. It exists
// only while the row is being processed.
type ImportRow struct {
	CamuNumber     string
	TempCamuNumber string
	LastName       string
	FirstName      string
	Dob            time.Time
	DobRaw         string
	Gender         string
	CivilStatus    string
	Phone          string
	Email          string
	Address        string
	Income         *decimal.Decimal
	EmployerNumber string
	Village        string
	EnrollmentType string
	Delete         bool
}

// deleteValues are the accepted truthy spellings of the deletion flag.
var deleteValues = map[string]bool{
	"true": true,
	"1":    true,
	"oui":  true,
	"yes":  true,
}

// ParseRow builds the typed row from normalized values. Dob stays zero when
// the raw value did not parse; the orchestrator rejects such rows unless the
// row is a deletion.
func ParseRow(values map[string]string) ImportRow {
	row := ImportRow{
		CamuNumber:     values[HeaderCamuNumber],
		TempCamuNumber: values[HeaderTempCamuNumber],
		LastName:       values[HeaderLastName],
		FirstName:      values[HeaderFirstName],
		DobRaw:         values[HeaderDob],
		Gender:         values[HeaderGender],
		CivilStatus:    values[HeaderCivilStatus],
		Phone:          values[HeaderPhone],
		Email:          values[HeaderEmail],
		Address:        values[HeaderAddress],
		EmployerNumber: values[HeaderEmployerNumber],
		Village:        values[HeaderVillage],
		EnrollmentType: values[HeaderEnrollmentType],
		Delete:         deleteValues[strings.ToLower(values[HeaderDelete])],
	}

	if t, ok := parseDate(row.DobRaw); ok {
		row.Dob = t
	}

	if raw := values[HeaderIncome]; raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			row.Income = &d
		}
	}

	return row
}

// Identifier returns the best available identifier for result reporting.
func (r ImportRow) Identifier() string {
	if r.CamuNumber != "" {
		return r.CamuNumber
	}
	return r.TempCamuNumber
}

// HasIdentifier reports whether the row carries any identifier at all.
func (r ImportRow) HasIdentifier() bool {
	return r.CamuNumber != "" || r.TempCamuNumber != ""
}

// Empty reports a fully blank line; such lines are dropped before counting.
func (r ImportRow) Empty() bool {
	return r.CamuNumber == "" && r.TempCamuNumber == "" &&
		r.LastName == "" && r.FirstName == "" && r.DobRaw == ""
}
