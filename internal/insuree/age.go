package insuree

import "time"

// AgeAt computes age in whole years as floor(days / 365.25). This mirrors
// the historical enrollment rule and intentionally differs from a calendar
// age by one day around some birthdays.
func AgeAt(dob, at time.Time) int {
	if at.Before(dob) {
		return 0
	}
	days := int(at.Sub(dob).Hours() / 24)
	return int(float64(days) / 365.25)
}
