// Package catalog loads the pre-fetched course snapshot for one term and
// validates manually entered sections before they reach the planner.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// ── Validation errors ──
//
// These are boundary rejections: a course failing validation is reported
// to the user and never enters the schedule store.

var (
	ErrNameRequired   = errors.New("course name is required")
	ErrUnitsInvalid   = errors.New("credit units must be at least 1")
	ErrSessionInvalid = errors.New("session start time must be before end time")
)

type sectionKey struct {
	code  string
	group string
}

// Catalog is an immutable snapshot of the offered sections.
type Catalog struct {
	courses []model.Course
	index   map[sectionKey]int
}

// Load reads a JSON array of courses from path. The snapshot is loaded
// once at startup and never mutated afterwards.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var courses []model.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return FromCourses(courses), nil
}

// FromCourses builds a snapshot from an in-memory course list.
func FromCourses(courses []model.Course) *Catalog {
	c := &Catalog{
		courses: make([]model.Course, len(courses)),
		index:   make(map[sectionKey]int, len(courses)),
	}
	copy(c.courses, courses)
	for i, course := range c.courses {
		c.index[sectionKey{course.Code, course.Group}] = i
	}
	return c
}

// All returns the sections in catalog order.
func (c *Catalog) All() []model.Course {
	out := make([]model.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Len reports the number of sections in the snapshot.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Find looks a section up by its (code, group) identity.
func (c *Catalog) Find(code, group string) (model.Course, bool) {
	i, ok := c.index[sectionKey{code, group}]
	if !ok {
		return model.Course{}, false
	}
	return c.courses[i].Clone(), true
}

// Search returns sections whose name, code or instructor contains the
// query. Both sides are digit-normalized and lowercased, so a query in
// either digit encoding matches.
func (c *Catalog) Search(query string) []model.Course {
	q := strings.ToLower(timeutil.NormalizeDigits(strings.TrimSpace(query)))
	if q == "" {
		return c.All()
	}
	var out []model.Course
	for _, course := range c.courses {
		haystack := strings.ToLower(timeutil.NormalizeDigits(
			course.Name + " " + course.Code + " " + course.Instructor,
		))
		if strings.Contains(haystack, q) {
			out = append(out, course.Clone())
		}
	}
	return out
}

// ValidateManual checks a manually entered course against the input
// invariants: non-empty name, at least one unit, and start < end on
// every session.
func ValidateManual(course model.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return ErrNameRequired
	}
	if course.Units < 1 {
		return ErrUnitsInvalid
	}
	for _, s := range course.Sessions {
		if !timeutil.ClockLess(s.StartTime, s.EndTime) {
			return fmt.Errorf("%w: %s-%s", ErrSessionInvalid, s.StartTime, s.EndTime)
		}
	}
	return nil
}

// NormalizeManual validates a manual course and fills in what the user
// may omit: a synthesized unique code, a default group, digit-normalized
// clock and exam strings, and a mixed gender restriction.
func NormalizeManual(course model.Course) (model.Course, error) {
	if err := ValidateManual(course); err != nil {
		return model.Course{}, err
	}

	out := course.Clone()
	if strings.TrimSpace(out.Code) == "" {
		out.Code = synthesizeCode()
	}
	if strings.TrimSpace(out.Group) == "" {
		out.Group = "1"
	}
	if out.Gender == "" {
		out.Gender = model.GenderMixed
	}
	for i, s := range out.Sessions {
		out.Sessions[i].StartTime = timeutil.NormalizeDigits(s.StartTime)
		out.Sessions[i].EndTime = timeutil.NormalizeDigits(s.EndTime)
	}
	out.ExamDate = timeutil.NormalizeDigits(out.ExamDate)
	out.ExamTime = timeutil.NormalizeDigits(out.ExamTime)
	return out, nil
}

func synthesizeCode() string {
	return "manual-" + uuid.NewString()[:8]
}
