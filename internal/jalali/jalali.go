// Package jalali is the single seam between the Jalali civil calendar the
// term is authored in and the Gregorian dates everything else computes
// with. Nothing outside this package touches calendar conversion.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// ParseDate parses a Jalali "YYYY/MM/DD" date (either digit encoding,
// "-" also accepted as separator) and returns the Gregorian midnight of
// that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	norm := timeutil.NormalizeDigits(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "/")
	parts := strings.Split(norm, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("jalali: malformed date %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("jalali: malformed date %q: %w", s, err)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("jalali: date %q out of range", s)
	}

	pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, loc)
	g := pt.Time()
	// Round-trip guard: ptime normalizes impossible dates (e.g. 1403/07/31)
	// instead of rejecting them.
	back := ptime.New(g)
	if back.Year() != year || int(back.Month()) != month || back.Day() != day {
		return time.Time{}, fmt.Errorf("jalali: date %q does not exist", s)
	}
	return g, nil
}
