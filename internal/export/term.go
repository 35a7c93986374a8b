// Package export projects the abstract weekly plan onto a concrete
// academic term: ICS with weekly recurrence, a dated agenda, and an XLSX
// timetable. Term boundaries are authored in the Jalali calendar; this
// package only ever sees them converted to Gregorian.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CS-UT/course-plan-sub000/internal/jalali"
	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// Term anchors the recurring weekly pattern to real dates.
type Term struct {
	// Start and End are Gregorian midnights of the term boundaries
	// (inclusive), in Location.
	Start time.Time
	End   time.Time

	// Location is a fixed-offset zone so output does not depend on the
	// host timezone database.
	Location   *time.Location
	TimezoneID string
	UTCOffset  string // e.g. "+0330"

	ProductID string
}

// NewTerm converts Jalali term boundaries into a Term. startDate and
// endDate are "YYYY/MM/DD" in the Jalali calendar, utcOffset is
// "+HHMM"/"-HHMM" (a ":" separator is tolerated).
func NewTerm(startDate, endDate, timezoneID, utcOffset, productID string) (Term, error) {
	offset, err := parseUTCOffset(utcOffset)
	if err != nil {
		return Term{}, err
	}
	loc := time.FixedZone(timezoneID, offset)

	start, err := jalali.ParseDate(startDate, loc)
	if err != nil {
		return Term{}, fmt.Errorf("term start: %w", err)
	}
	end, err := jalali.ParseDate(endDate, loc)
	if err != nil {
		return Term{}, fmt.Errorf("term end: %w", err)
	}
	if end.Before(start) {
		return Term{}, fmt.Errorf("term end %s before start %s", endDate, startDate)
	}

	return Term{
		Start:      start,
		End:        end,
		Location:   loc,
		TimezoneID: timezoneID,
		UTCOffset:  strings.ReplaceAll(utcOffset, ":", ""),
		ProductID:  productID,
	}, nil
}

// FirstOccurrence returns the first date on or after the term start whose
// weekday matches day. A 7-day linear scan always terminates.
func (t Term) FirstOccurrence(day model.Weekday) time.Time {
	want := timeutil.CivilWeekday(day)
	d := t.Start
	for d.Weekday() != want {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// UntilUTC is the inclusive recurrence cutoff: end of the term's last day
// converted to UTC.
func (t Term) UntilUTC() time.Time {
	endOfDay := time.Date(t.End.Year(), t.End.Month(), t.End.Day(), 23, 59, 59, 0, t.Location)
	return endOfDay.UTC()
}

func parseUTCOffset(s string) (int, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ":", "")
	if len(raw) != 5 || (raw[0] != '+' && raw[0] != '-') {
		return 0, fmt.Errorf("malformed utc offset %q", s)
	}
	hours, err := strconv.Atoi(raw[1:3])
	if err != nil {
		return 0, fmt.Errorf("malformed utc offset %q", s)
	}
	mins, err := strconv.Atoi(raw[3:5])
	if err != nil {
		return 0, fmt.Errorf("malformed utc offset %q", s)
	}
	offset := hours*3600 + mins*60
	if raw[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

// at combines a date with minutes from midnight in the term's zone.
func (t Term) at(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, t.Location)
}
