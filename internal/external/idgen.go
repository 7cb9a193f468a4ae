package external

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CamuDigital/PH-Backend/internal/location"
)

// CamuNumberGenerator synthesizes the national insurance identifier for a
// person registered without one.
type CamuNumberGenerator interface {
	Generate(gender string, village *location.Village, dob time.Time, category string) (string, error)
}

// DefaultCamuNumberGenerator builds numbers as
// <region 2><district 2><gender 1><yymmdd 6><category 1><random 4>.
type DefaultCamuNumberGenerator struct{}

var categoryCodes = map[string]string{
	CategoryEmployee:     "E",
	CategorySelfEmployed: "I",
	CategoryStudent:      "S",
	CategoryPensioner:    "P",
	CategoryNoActivity:   "N",
	CategoryVulnerable:   "V",
}

func (DefaultCamuNumberGenerator) Generate(gender string, village *location.Village, dob time.Time, category string) (string, error) {
	if village == nil {
		return "", fmt.Errorf("camu number needs a resolved village")
	}

	genderDigit := "1"
	if strings.EqualFold(gender, "F") {
		genderDigit = "2"
	}

	catCode, ok := categoryCodes[category]
	if !ok {
		catCode = "X"
	}

	// Region and district positions come from the village code, which is
	// hierarchical (RRDDxxxx).
	code := village.Code
	for len(code) < 4 {
		code += "0"
	}

	suffix := strings.ToUpper(uuid.New().String()[:4])

	return fmt.Sprintf("%s%s%s%s%s",
		code[:4], genderDigit, dob.Format("060102"), catCode, suffix), nil
}
