// Package model holds the planner's core value types: catalog sections,
// weekly sessions, selected courses and named schedules.
package model

// Weekday numbers days the way the civil calendar does (0 = Sunday …
// 6 = Saturday). The academic week starts on Saturday; only the display
// order differs, never the numbering. See timeutil.DisplayOrder.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Gender is a section's enrollment restriction.
type Gender string

const (
	GenderMixed  Gender = "mixed"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Session is one recurring weekly meeting block of a section.
// Invariant: StartTime < EndTime ("HH:MM", zero padded).
type Session struct {
	DayOfWeek Weekday `json:"dayOfWeek"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// Course is one catalog section, identified by (Code, Group) within a
// catalog snapshot. Immutable once loaded; manual entries are built
// through catalog.NormalizeManual.
type Course struct {
	Code         string    `json:"courseCode"`
	Group        string    `json:"group"`
	Name         string    `json:"name"`
	Units        int       `json:"units"`
	Gender       Gender    `json:"gender"`
	Instructor   string    `json:"instructor"`
	Sessions     []Session `json:"sessions"`
	ExamDate     string    `json:"examDate,omitempty"`
	ExamTime     string    `json:"examTime,omitempty"`
	Location     string    `json:"location,omitempty"`
	Prerequisite string    `json:"prerequisite,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Grade        string    `json:"grade,omitempty"`
}

// Is reports whether the course carries the given section identity.
func (c Course) Is(code, group string) bool {
	return c.Code == code && c.Group == group
}

// Clone returns a deep copy; Sessions is the only reference field.
func (c Course) Clone() Course {
	cp := c
	cp.Sessions = make([]Session, len(c.Sessions))
	copy(cp.Sessions, c.Sessions)
	return cp
}

// CourseMode tags how a selected course participates in a view.
// Hover entries are ephemeral previews: they are merged into render
// output by the store and never enter persisted state or exports.
type CourseMode string

const (
	ModeDefault CourseMode = "default"
	ModeHover   CourseMode = "hover"
	ModeBoth    CourseMode = "both"
)

// SelectedCourse is a course plus its view mode.
type SelectedCourse struct {
	Course
	Mode CourseMode `json:"mode"`
}

// Schedule is one independent set of selected sections.
type Schedule struct {
	ID      int              `json:"id"`
	Courses []SelectedCourse `json:"courses"`
}

// Clone deep-copies the schedule's course list.
func (s Schedule) Clone() Schedule {
	cp := Schedule{ID: s.ID, Courses: make([]SelectedCourse, 0, len(s.Courses))}
	for _, sc := range s.Courses {
		cp.Courses = append(cp.Courses, SelectedCourse{Course: sc.Course.Clone(), Mode: sc.Mode})
	}
	return cp
}

// PlannerState is the persisted shape of the planner: every schedule
// plus the current selection pointer.
type PlannerState struct {
	Schedules         []Schedule `json:"schedules"`
	CurrentScheduleID int        `json:"currentScheduleId"`
}

// DefaultState is the fallback used on first run and on corrupt storage:
// a single empty schedule with id 0.
func DefaultState() PlannerState {
	return PlannerState{
		Schedules:         []Schedule{{ID: 0, Courses: []SelectedCourse{}}},
		CurrentScheduleID: 0,
	}
}
