package external

import (
	"strings"
	"testing"
	"time"

	"github.com/CamuDigital/PH-Backend/internal/location"
)

func TestDefaultCamuNumberGenerator(t *testing.T) {
	gen := DefaultCamuNumberGenerator{}
	village := &location.Village{Code: "01020001", Name: "Bacongo"}
	dob := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)

	number, err := gen.Generate("F", village, dob, CategoryStudent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(number) != 16 {
		t.Fatalf("expected 16 characters, got %d (%q)", len(number), number)
	}
	if !strings.HasPrefix(number, "0102"+"2"+"900315"+"S") {
		t.Errorf("unexpected prefix: %q", number)
	}

	// Random suffix keeps two otherwise identical registrations distinct.
	other, err := gen.Generate("F", village, dob, CategoryStudent)
	if err != nil {
		t.Fatal(err)
	}
	if number == other {
		t.Error("two generated numbers should differ")
	}
}

func TestDefaultCamuNumberGeneratorMale(t *testing.T) {
	gen := DefaultCamuNumberGenerator{}
	village := &location.Village{Code: "02"}
	dob := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)

	number, err := gen.Generate("M", village, dob, "unmapped")
	if err != nil {
		t.Fatal(err)
	}
	// Short codes are right-padded; unmapped categories get X.
	if !strings.HasPrefix(number, "0200"+"1"+"000102"+"X") {
		t.Errorf("unexpected prefix: %q", number)
	}
}

func TestDefaultCamuNumberGeneratorNeedsVillage(t *testing.T) {
	gen := DefaultCamuNumberGenerator{}
	if _, err := gen.Generate("M", nil, time.Now(), CategoryEmployee); err == nil {
		t.Fatal("expected error without village")
	}
}
