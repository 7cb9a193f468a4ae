package importer

import "testing"

func TestParseRowDeleteFlag(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "oui", "Oui", "yes", "YES"}
	for _, v := range truthy {
		row := ParseRow(map[string]string{HeaderDelete: v})
		if !row.Delete {
			t.Errorf("%q should mark the row for deletion", v)
		}
	}

	falsy := []string{"", "0", "non", "false", "x"}
	for _, v := range falsy {
		row := ParseRow(map[string]string{HeaderDelete: v})
		if row.Delete {
			t.Errorf("%q should not mark the row for deletion", v)
		}
	}
}

func TestParseRowIncome(t *testing.T) {
	row := ParseRow(map[string]string{HeaderIncome: "150000.50"})
	if row.Income == nil {
		t.Fatal("expected income to parse")
	}
	if row.Income.String() != "150000.5" {
		t.Errorf("income = %s", row.Income)
	}

	row = ParseRow(map[string]string{HeaderIncome: "beaucoup"})
	if row.Income != nil {
		t.Errorf("garbage income should stay nil, got %s", row.Income)
	}
}

func TestRowIdentifier(t *testing.T) {
	row := ImportRow{CamuNumber: "A", TempCamuNumber: "B"}
	if row.Identifier() != "A" {
		t.Errorf("primary identifier wins, got %q", row.Identifier())
	}

	row = ImportRow{TempCamuNumber: "B"}
	if row.Identifier() != "B" {
		t.Errorf("temporary identifier used as fallback, got %q", row.Identifier())
	}
	if !row.HasIdentifier() {
		t.Error("temporary number alone still counts as an identifier")
	}

	if (ImportRow{}).HasIdentifier() {
		t.Error("empty row has no identifier")
	}
}

func TestParseRowInvalidDobKeepsRaw(t *testing.T) {
	row := ParseRow(map[string]string{HeaderDob: "pas une date"})
	if !row.Dob.IsZero() {
		t.Errorf("invalid dob should stay zero, got %v", row.Dob)
	}
	if row.DobRaw != "pas une date" {
		t.Errorf("raw value should be kept for reporting, got %q", row.DobRaw)
	}
}
