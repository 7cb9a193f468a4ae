package location

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var ErrVillageNotFound = errors.New("village not found")

// foldName lowercases and strips diacritics so that "Ngamaba-Mfilou" and
// "ngamaba mfilou" or "Poto-Poto"/"POTO POTO" compare equal.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = strings.ReplaceAll(folded, "-", " ")
	return strings.Join(strings.Fields(folded), " ")
}

// FindVillageByCode resolves a village by its unique code.
func FindVillageByCode(tx *gorm.DB, code string) (*Village, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrVillageNotFound
	}

	var v Village
	if err := tx.First(&v, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillageNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindVillage resolves by code first, then by diacritic-insensitive name.
// Spreadsheets from the field mix both forms in the village column.
func FindVillage(tx *gorm.DB, codeOrName string) (*Village, error) {
	v, err := FindVillageByCode(tx, codeOrName)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrVillageNotFound) {
		return nil, err
	}

	want := foldName(codeOrName)
	if want == "" {
		return nil, ErrVillageNotFound
	}

	var all []Village
	if err := tx.Find(&all).Error; err != nil {
		return nil, err
	}
	for i := range all {
		if foldName(all[i].Name) == want {
			return &all[i], nil
		}
	}
	return nil, ErrVillageNotFound
}
