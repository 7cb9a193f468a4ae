package importer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the spreadsheet date formats accepted, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// NormalizeRow cleans one raw row in place-compatible fashion: strings are
// trimmed, not-a-number sentinels become true absence, date-like values are
// reformatted to ISO when unambiguous, and phone-like floats ("69123456.0")
// are coerced to integer strings. It never fails; a value it cannot
// normalize passes through unchanged for a downstream component to reject.
func NormalizeRow(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		v := strings.TrimSpace(value)

		switch strings.ToLower(v) {
		case "nan", "nat", "none", "null":
			v = ""
		}

		switch key {
		case HeaderDob:
			if t, ok := parseDate(v); ok {
				v = t.Format("2006-01-02")
			}
		case HeaderPhone, HeaderCamuNumber, HeaderTempCamuNumber, HeaderEmployerNumber:
			v = trimFloatSuffix(v)
		case HeaderGender:
			v = strings.ToUpper(v)
		}

		out[key] = v
	}
	return out
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// trimFloatSuffix turns "69123456.0" into "69123456". Spreadsheet tools
// export numeric cells as floats even for identifiers.
func trimFloatSuffix(v string) string {
	if !strings.Contains(v, ".") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	// int64 conversion is undefined outside its range; identifiers that big
	// are left untouched for a downstream component to reject.
	if math.Abs(f) >= math.MaxInt64 || f != math.Trunc(f) {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}
