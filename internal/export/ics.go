package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/CS-UT/course-plan-sub000/internal/jalali"
	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// ── ICS writer ──────────────────────────────────────────────
//
// Design decisions:
//   - The output is a byte-exact contract suitable for golden-file tests,
//     so the writer controls line order, escaping and CRLF itself instead
//     of delegating serialization to a library.
//   - No generation timestamp is embedded; DTSTAMP mirrors DTSTART, so
//     re-exporting the same selection is byte-identical.
//   - Event UIDs are SHA-1 UUIDs over (code, group, session index) in a
//     fixed namespace; exam UIDs carry an "exam-" prefix. Same input,
//     same identifiers.
//   - A malformed exam date suppresses only that exam event; the weekly
//     class events still export.
// ─────────────────────────────────────────────────────────────

const (
	localTimeLayout = "20060102T150405"
	utcTimeLayout   = "20060102T150405Z"

	examDurationMinutes = 120
)

// uidNamespace is fixed so exports are idempotent across runs.
var uidNamespace = uuid.MustParse("8a6aa0f4-1d6b-4a2e-9f30-5c1e8f6d4b21")

// WriteICS renders the selection as an iCalendar document. Hover-only
// previews are excluded; persisted entries being previewed (mode "both")
// export normally.
func WriteICS(w io.Writer, courses []model.SelectedCourse, term Term) error {
	lw := &lineWriter{w: w}

	lw.line("BEGIN:VCALENDAR")
	lw.line("VERSION:2.0")
	lw.line("PRODID:" + term.ProductID)
	lw.line("CALSCALE:GREGORIAN")
	lw.line("METHOD:PUBLISH")
	lw.line("X-WR-TIMEZONE:" + term.TimezoneID)
	writeTimezone(lw, term)

	until := term.UntilUTC().Format(utcTimeLayout)

	for _, sc := range courses {
		if sc.Mode == model.ModeHover {
			continue
		}
		writeCourse(lw, sc.Course, term, until)
	}

	lw.line("END:VCALENDAR")
	return lw.err
}

// BuildICS is WriteICS into a string.
func BuildICS(courses []model.SelectedCourse, term Term) (string, error) {
	var b strings.Builder
	if err := WriteICS(&b, courses, term); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeTimezone(lw *lineWriter, term Term) {
	lw.line("BEGIN:VTIMEZONE")
	lw.line("TZID:" + term.TimezoneID)
	lw.line("BEGIN:STANDARD")
	lw.line("DTSTART:19700101T000000")
	lw.line("TZOFFSETFROM:" + term.UTCOffset)
	lw.line("TZOFFSETTO:" + term.UTCOffset)
	lw.line("END:STANDARD")
	lw.line("END:VTIMEZONE")
}

func writeCourse(lw *lineWriter, course model.Course, term Term, until string) {
	for idx, session := range course.Sessions {
		if _, ok := timeutil.ICSDay(session.DayOfWeek); !ok {
			continue // defensive: all seven days are mapped
		}
		start, err := timeutil.ParseClock(session.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(session.EndTime)
		if err != nil {
			continue
		}

		first := term.FirstOccurrence(session.DayOfWeek)
		dtStart := term.at(first, start).Format(localTimeLayout)
		dtEnd := term.at(first, end).Format(localTimeLayout)

		lw.line("BEGIN:VEVENT")
		lw.line("UID:" + classUID(course, idx))
		lw.line("DTSTAMP:" + dtStart + "Z")
		lw.line("DTSTART;TZID=" + term.TimezoneID + ":" + dtStart)
		lw.line("DTEND;TZID=" + term.TimezoneID + ":" + dtEnd)
		lw.line("RRULE:FREQ=WEEKLY;UNTIL=" + until)
		lw.line("SUMMARY:" + escapeText(course.Name))
		writeDetails(lw, course)
		lw.line("END:VEVENT")

		if idx == 0 {
			writeExam(lw, course, term)
		}
	}

	// A fully exam-graded course has no weekly sessions; its exam still
	// exports once.
	if len(course.Sessions) == 0 {
		writeExam(lw, course, term)
	}
}

func writeExam(lw *lineWriter, course model.Course, term Term) {
	if course.ExamDate == "" || course.ExamTime == "" {
		return
	}
	date, err := jalali.ParseDate(course.ExamDate, term.Location)
	if err != nil {
		return // malformed exam date suppresses only the exam event
	}
	start, err := timeutil.ParseClock(course.ExamTime)
	if err != nil {
		return
	}

	dtStart := term.at(date, start).Format(localTimeLayout)
	dtEnd := term.at(date, start+examDurationMinutes).Format(localTimeLayout)

	lw.line("BEGIN:VEVENT")
	lw.line("UID:" + examUID(course))
	lw.line("DTSTAMP:" + dtStart + "Z")
	lw.line("DTSTART;TZID=" + term.TimezoneID + ":" + dtStart)
	lw.line("DTEND;TZID=" + term.TimezoneID + ":" + dtEnd)
	lw.line("SUMMARY:" + escapeText("Exam: "+course.Name))
	writeDetails(lw, course)
	lw.line("END:VEVENT")
}

func writeDetails(lw *lineWriter, course model.Course) {
	desc := fmt.Sprintf("Course %s group %s", course.Code, course.Group)
	if course.Instructor != "" {
		desc += " - " + course.Instructor
	}
	if course.Notes != "" {
		desc += "\n" + course.Notes
	}
	lw.line("DESCRIPTION:" + escapeText(desc))
	if course.Location != "" {
		lw.line("LOCATION:" + escapeText(course.Location))
	}
}

func classUID(course model.Course, sessionIndex int) string {
	key := fmt.Sprintf("class/%s/%s/%d", course.Code, course.Group, sessionIndex)
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@course-plan"
}

func examUID(course model.Course) string {
	key := fmt.Sprintf("exam/%s/%s", course.Code, course.Group)
	return "exam-" + uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@course-plan"
}

// escapeText escapes TEXT values per RFC 5545: backslash first, then
// semicolon, comma and newline. Carriage returns are dropped.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// lineWriter emits CRLF-terminated lines and remembers the first error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\r\n")
}
