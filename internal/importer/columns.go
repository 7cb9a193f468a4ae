package importer

import "strings"

// Canonical row keys. Spreadsheets arrive with French labels; headers are
// renamed to these keys before any processing.
const (
	HeaderCamuNumber     = "camu_number"
	HeaderTempCamuNumber = "temp_camu_number"
	HeaderLastName       = "last_name"
	HeaderFirstName      = "first_name"
	HeaderDob            = "dob"
	HeaderGender         = "gender"
	HeaderCivilStatus    = "civil_status"
	HeaderPhone          = "phone"
	HeaderEmail          = "email"
	HeaderAddress        = "address"
	HeaderIncome         = "income"
	HeaderEmployerNumber = "employer_number"
	HeaderVillage        = "village"
	HeaderEnrollmentType = "enrollment_type"
	HeaderDelete         = "delete"
)

// defaultColumnLabels maps spreadsheet labels to canonical keys. Matching is
// case-insensitive on the trimmed label.
var defaultColumnLabels = map[string]string{
	"numéro camu":            HeaderCamuNumber,
	"numero camu":            HeaderCamuNumber,
	"numéro camu temporaire": HeaderTempCamuNumber,
	"numero camu temporaire": HeaderTempCamuNumber,
	"nom":                    HeaderLastName,
	"prénom":                 HeaderFirstName,
	"prenom":                 HeaderFirstName,
	"date de naissance":      HeaderDob,
	"sexe":                   HeaderGender,
	"état civil":             HeaderCivilStatus,
	"etat civil":             HeaderCivilStatus,
	"téléphone":              HeaderPhone,
	"telephone":              HeaderPhone,
	"email":                  HeaderEmail,
	"adresse":                HeaderAddress,
	"revenu":                 HeaderIncome,
	"numéro employeur":       HeaderEmployerNumber,
	"numero employeur":       HeaderEmployerNumber,
	"village":                HeaderVillage,
	"type d'enrôlement":      HeaderEnrollmentType,
	"type d'enrolement":      HeaderEnrollmentType,
	"supprimer":              HeaderDelete,
}

// ColumnMapper renames source headers to canonical keys.
type ColumnMapper struct {
	labels map[string]string
}

// NewColumnMapper merges overrides (from config) over the default label
// table.
func NewColumnMapper(overrides map[string]string) *ColumnMapper {
	labels := make(map[string]string, len(defaultColumnLabels)+len(overrides))
	for k, v := range defaultColumnLabels {
		labels[k] = v
	}
	for k, v := range overrides {
		labels[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &ColumnMapper{labels: labels}
}

// Canonical returns the canonical key for a source header, or the trimmed
// header itself when no mapping exists (unknown columns ride along).
func (m *ColumnMapper) Canonical(header string) string {
	h := strings.TrimSpace(header)
	// Handle BOM on the first header cell
	h = strings.TrimPrefix(h, "\ufeff")
	if key, ok := m.labels[strings.ToLower(h)]; ok {
		return key
	}
	return h
}
