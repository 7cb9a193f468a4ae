package location

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// The same temp file backs main and the attached schema: AutoMigrate
	// emits unqualified CREATE INDEX statements that sqlite resolves against
	// main, so both names must point at the same database.
	dsn := filepath.Join(t.TempDir(), "test.db")
	tdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := tdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := tdb.Exec("ATTACH DATABASE '" + dsn + "' AS location").Error; err != nil {
		t.Fatalf("attach schema: %v", err)
	}
	if err := tdb.AutoMigrate(&Village{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return tdb
}

func seedVillages(t *testing.T, tdb *gorm.DB) {
	t.Helper()
	for _, v := range []Village{
		{ID: uuid.New(), Code: "01010001", Name: "Poto-Poto", Municipality: "Brazzaville"},
		{ID: uuid.New(), Code: "01030002", Name: "Ngamaba-Mfilou", Municipality: "Brazzaville"},
		{ID: uuid.New(), Code: "02010001", Name: "Tié-Tié", Municipality: "Pointe-Noire"},
	} {
		if err := tdb.Create(&v).Error; err != nil {
			t.Fatalf("seed village: %v", err)
		}
	}
}

func TestFoldName(t *testing.T) {
	cases := map[string]string{
		"Poto-Poto":          "poto poto",
		"POTO POTO":          "poto poto",
		"Tié-Tié":            "tie tie",
		"  Ngamaba  Mfilou ": "ngamaba mfilou",
	}
	for in, want := range cases {
		if got := foldName(in); got != want {
			t.Errorf("foldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindVillageByCode(t *testing.T) {
	tdb := openTestDB(t)
	seedVillages(t, tdb)

	v, err := FindVillageByCode(tdb, "01010001")
	if err != nil {
		t.Fatalf("FindVillageByCode: %v", err)
	}
	if v.Name != "Poto-Poto" {
		t.Errorf("got %q", v.Name)
	}

	if _, err := FindVillageByCode(tdb, "99999999"); !errors.Is(err, ErrVillageNotFound) {
		t.Errorf("expected ErrVillageNotFound, got %v", err)
	}
	if _, err := FindVillageByCode(tdb, ""); !errors.Is(err, ErrVillageNotFound) {
		t.Errorf("empty code: expected ErrVillageNotFound, got %v", err)
	}
}

func TestFindVillageByName(t *testing.T) {
	tdb := openTestDB(t)
	seedVillages(t, tdb)

	// Accent- and hyphen-insensitive.
	for _, query := range []string{"tie tie", "TIE-TIE", "Tié-Tié"} {
		v, err := FindVillage(tdb, query)
		if err != nil {
			t.Fatalf("FindVillage(%q): %v", query, err)
		}
		if v.Code != "02010001" {
			t.Errorf("FindVillage(%q) = %q", query, v.Code)
		}
	}

	// Code still wins when the value looks like one.
	v, err := FindVillage(tdb, "01030002")
	if err != nil {
		t.Fatalf("FindVillage by code: %v", err)
	}
	if v.Name != "Ngamaba-Mfilou" {
		t.Errorf("got %q", v.Name)
	}

	if _, err := FindVillage(tdb, "Atlantide"); !errors.Is(err, ErrVillageNotFound) {
		t.Errorf("expected ErrVillageNotFound, got %v", err)
	}
}
