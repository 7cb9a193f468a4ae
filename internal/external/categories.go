package external

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical enrollment categories.
const (
	CategoryEmployee     = "employees"
	CategorySelfEmployed = "selfEmployed"
	CategoryStudent      = "students"
	CategoryPensioner    = "pensioners"
	CategoryNoActivity   = "noActivity"
	CategoryVulnerable   = "vulnerable"
)

var ErrUnknownEnrollmentType = errors.New("unknown enrollment type")

// enrollmentTypes maps the French labels used on enrollment spreadsheets to
// canonical categories. Matching is accent- and case-insensitive on the
// label side only; the canonical values are fixed strings.
var enrollmentTypes = map[string]string{
	"salarie":             CategoryEmployee,
	"salaries":            CategoryEmployee,
	"travailleur":         CategoryEmployee,
	"independant":         CategorySelfEmployed,
	"independants":        CategorySelfEmployed,
	"etudiant":            CategoryStudent,
	"etudiants":           CategoryStudent,
	"students":            CategoryStudent,
	"pensionne":           CategoryPensioner,
	"pensionnes":          CategoryPensioner,
	"retraite":            CategoryPensioner,
	"sans activite":       CategoryNoActivity,
	"personne vulnerable": CategoryVulnerable,
	"vulnerable":          CategoryVulnerable,
}

// MapEnrollmentType resolves a raw spreadsheet label to its canonical
// category.
func MapEnrollmentType(label string) (string, error) {
	key := foldLabel(label)
	if key == "" {
		return "", fmt.Errorf("%w: empty label", ErrUnknownEnrollmentType)
	}
	if cat, ok := enrollmentTypes[key]; ok {
		return cat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnrollmentType, label)
}

func foldLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a",
		"î", "i", "ï", "i",
		"ô", "o", "û", "u", "ù", "u",
		"ç", "c",
		"’", "'",
	)
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
