// Package timeutil provides clock-string helpers, digit normalization and
// the weekday mapping between the Saturday-first academic week and the
// civil calendar.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

// NormalizeDigits folds Persian (۰-۹) and Arabic-Indic (٠-٩) digits to
// ASCII. Catalog rows and manual input may carry either encoding for the
// same clock or date string.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

// ParseClock parses a zero-padded "HH:MM" string into minutes from
// midnight. Digits are normalized first.
func ParseClock(s string) (int, error) {
	s = NormalizeDigits(strings.TrimSpace(s))
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}

// ClockLess orders two "HH:MM" strings. With the fixed-width format,
// lexicographic comparison of the normalized strings matches numeric
// comparison.
func ClockLess(a, b string) bool {
	return NormalizeDigits(a) < NormalizeDigits(b)
}

// civilWeekdays maps the academic weekday enum to time.Weekday. The two
// numberings coincide, but date arithmetic goes through this table so the
// alignment is stated (and tested) in exactly one place.
var civilWeekdays = [7]time.Weekday{
	model.Sunday:    time.Sunday,
	model.Monday:    time.Monday,
	model.Tuesday:   time.Tuesday,
	model.Wednesday: time.Wednesday,
	model.Thursday:  time.Thursday,
	model.Friday:    time.Friday,
	model.Saturday:  time.Saturday,
}

// CivilWeekday converts an academic weekday to its civil counterpart.
func CivilWeekday(d model.Weekday) time.Weekday {
	return civilWeekdays[d]
}

// icsDays maps the weekday enum to RFC 5545 day tokens.
var icsDays = map[model.Weekday]string{
	model.Sunday:    "SU",
	model.Monday:    "MO",
	model.Tuesday:   "TU",
	model.Wednesday: "WE",
	model.Thursday:  "TH",
	model.Friday:    "FR",
	model.Saturday:  "SA",
}

// ICSDay returns the RFC 5545 token for a weekday, and whether the
// weekday has a mapping at all (a defensive guard: all seven do).
func ICSDay(d model.Weekday) (string, bool) {
	tok, ok := icsDays[d]
	return tok, ok
}

var dayNames = [7]string{
	model.Sunday:    "Sunday",
	model.Monday:    "Monday",
	model.Tuesday:   "Tuesday",
	model.Wednesday: "Wednesday",
	model.Thursday:  "Thursday",
	model.Friday:    "Friday",
	model.Saturday:  "Saturday",
}

// DayName returns the English name of a weekday.
func DayName(d model.Weekday) string {
	if d < 0 || int(d) >= len(dayNames) {
		return ""
	}
	return dayNames[d]
}

// DisplayOrder lists the weekdays in academic order, Saturday first.
func DisplayOrder() [7]model.Weekday {
	return [7]model.Weekday{
		model.Saturday, model.Sunday, model.Monday, model.Tuesday,
		model.Wednesday, model.Thursday, model.Friday,
	}
}
