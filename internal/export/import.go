package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

// ErrPlanEmpty signals an ICS document with no usable class events.
var ErrPlanEmpty = errors.New("no class events found in plan")

// examSummaryPrefix marks exam events in exported plans; they are skipped
// on import because the exam slot belongs to the catalog section, not the
// calendar.
const examSummaryPrefix = "Exam: "

// ParsePlan reads a previously exported plan (or any iCalendar document
// with weekly class events) back into manual courses. Events sharing a
// summary merge into one course with multiple sessions; units default to
// 1 and can be corrected by the user afterwards.
func ParsePlan(r io.Reader, loc *time.Location) ([]model.Course, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	byName := make(map[string]*model.Course)
	var order []string

	for _, evt := range cal.Events() {
		summary := propValue(evt, ics.ComponentPropertySummary)
		name := strings.TrimSpace(summary)
		if name == "" || strings.HasPrefix(name, examSummaryPrefix) {
			continue
		}

		dtStart, err := parseEventTime(evt, ics.ComponentPropertyDtStart, loc)
		if err != nil {
			continue
		}
		dtEnd, err := parseEventTime(evt, ics.ComponentPropertyDtEnd, loc)
		if err != nil {
			// No DTEND: assume a two hour block, same default as exams.
			dtEnd = dtStart.Add(2 * time.Hour)
		}

		session := model.Session{
			DayOfWeek: model.Weekday(dtStart.Weekday()),
			StartTime: dtStart.Format("15:04"),
			EndTime:   dtEnd.Format("15:04"),
		}

		course, ok := byName[name]
		if !ok {
			course = &model.Course{
				Name:     name,
				Units:    1,
				Gender:   model.GenderMixed,
				Location: propValue(evt, ics.ComponentPropertyLocation),
			}
			byName[name] = course
			order = append(order, name)
		}
		if !hasSession(course.Sessions, session) {
			course.Sessions = append(course.Sessions, session)
		}
	}

	if len(order) == 0 {
		return nil, ErrPlanEmpty
	}

	courses := make([]model.Course, 0, len(order))
	for _, name := range order {
		courses = append(courses, *byName[name])
	}
	return courses, nil
}

func propValue(evt *ics.VEvent, name ics.ComponentProperty) string {
	prop := evt.GetProperty(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// parseEventTime handles the date-time shapes exports produce: UTC,
// floating, and TZID-qualified local times.
func parseEventTime(evt *ics.VEvent, name ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(name)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", name)
	}

	for _, format := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		t, err := time.Parse(format, prop.Value)
		if err != nil {
			continue
		}
		if strings.HasSuffix(format, "Z") {
			return t.In(loc), nil
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date-time %q", prop.Value)
}

func hasSession(sessions []model.Session, s model.Session) bool {
	for _, existing := range sessions {
		if existing == s {
			return true
		}
	}
	return false
}
