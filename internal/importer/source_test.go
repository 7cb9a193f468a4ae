package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadRowsCSV(t *testing.T) {
	path := writeCSV(t, [][]string{
		{"Nom", "Prénom", "Village"},
		{"Okemba", "Jean", "Bacongo"},
		{"", "", ""},
		{"Ngoma", "Paul", "Moungali"},
	})

	rows, err := ReadRows(path, NewColumnMapper(nil))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank row dropped, got %d rows", len(rows))
	}
	if rows[0][HeaderLastName] != "Okemba" || rows[1][HeaderLastName] != "Ngoma" {
		t.Errorf("rows out of order or misread: %v", rows)
	}
	if rows[0][HeaderVillage] != "Bacongo" {
		t.Errorf("village column not mapped: %v", rows[0])
	}
}

func TestReadRowsRaggedCSV(t *testing.T) {
	path := writeCSV(t, [][]string{
		{"Nom", "Prénom", "Village"},
		{"Okemba", "Jean"},
	})

	rows, err := ReadRows(path, NewColumnMapper(nil))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if rows[0][HeaderVillage] != "" {
		t.Errorf("missing trailing cell should read empty, got %q", rows[0][HeaderVillage])
	}
}

func TestReadRowsHeaderOnly(t *testing.T) {
	path := writeCSV(t, [][]string{{"Nom", "Prénom"}})

	if _, err := ReadRows(path, NewColumnMapper(nil)); err == nil {
		t.Fatal("header-only file should be rejected")
	}
}

func TestReadRowsUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.txt")
	if err := os.WriteFile(path, []byte("Nom\nOkemba\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRows(path, NewColumnMapper(nil)); err == nil {
		t.Fatal("unsupported extension should be rejected")
	}
}
