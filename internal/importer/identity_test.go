package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CamuDigital/PH-Backend/internal/insuree"
)

func TestMinimumAgePerCategory(t *testing.T) {
	o := newTestOrchestrator(t, openTestDB(t), nil)

	require.Equal(t, 16, o.minimumAge("students"))
	require.Equal(t, 18, o.minimumAge("employees"))
	require.Equal(t, 18, o.minimumAge("selfEmployed"))

	// The student comparison is an exact, case-sensitive match.
	require.Equal(t, 18, o.minimumAge("Students"))
	require.Equal(t, 18, o.minimumAge("STUDENTS"))
}

func TestRunSyncStudentMinimumAge(t *testing.T) {
	tdb := openTestDB(t)
	ph, _, _ := seedPolicyHolder(t, tdb)
	o := newTestOrchestrator(t, tdb, nil)

	// A 17-year-old is old enough as a student but not under any other
	// category; a 15-year-old fails even the student floor.
	path := writeCSV(t, [][]string{
		frenchHeader,
		{"", "Okemba", "Grace", dobYearsAgo(17), "F", "Bacongo", "Étudiant", ""},
		{"", "Mbemba", "Alice", dobYearsAgo(17), "F", "Bacongo", "Salarié", ""},
		{"", "Ngoma", "Chris", dobYearsAgo(15), "M", "Bacongo", "Étudiant", ""},
	})
	summary, err := o.RunSync(createJob(t, tdb, ph.ID, path))
	require.NoError(t, err)
	require.Equal(t, 1, summary.SuccessCount)
	require.Equal(t, 2, summary.ErrorCount)

	require.Equal(t, "OK", summary.Results[0].Etat)

	require.Equal(t, "KO", summary.Results[1].Etat)
	require.Equal(t, "Erreur: L'âge minimum requis est de 18 ans", summary.Results[1].Remarque)

	require.Equal(t, "KO", summary.Results[2].Etat)
	require.Equal(t, "Erreur: L'âge minimum requis est de 16 ans", summary.Results[2].Remarque)

	// Only the accepted student exists afterwards.
	var people int64
	require.NoError(t, tdb.Model(&insuree.Insuree{}).Count(&people).Error)
	require.EqualValues(t, 1, people)

	var person insuree.Insuree
	require.NoError(t, tdb.First(&person, "last_name = ?", "Okemba").Error)
	require.Equal(t, "students", insuree.DecodeExt(person.Ext).EnrollmentCategory)
}
