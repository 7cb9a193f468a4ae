package external

import (
	"errors"
	"testing"
)

func TestMapEnrollmentType(t *testing.T) {
	cases := map[string]string{
		"Salarié":             CategoryEmployee,
		"SALARIÉS":            CategoryEmployee,
		"travailleur":         CategoryEmployee,
		"Indépendant":         CategorySelfEmployed,
		"Étudiant":            CategoryStudent,
		"etudiants":           CategoryStudent,
		"students":            CategoryStudent,
		"Retraité":            CategoryPensioner,
		"Sans  activité":      CategoryNoActivity,
		"Personne vulnérable": CategoryVulnerable,
	}
	for in, want := range cases {
		got, err := MapEnrollmentType(in)
		if err != nil {
			t.Errorf("MapEnrollmentType(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("MapEnrollmentType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapEnrollmentTypeUnknown(t *testing.T) {
	for _, in := range []string{"", "  ", "Martien"} {
		if _, err := MapEnrollmentType(in); !errors.Is(err, ErrUnknownEnrollmentType) {
			t.Errorf("MapEnrollmentType(%q): expected ErrUnknownEnrollmentType, got %v", in, err)
		}
	}
}
