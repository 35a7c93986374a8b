// Package planner owns the schedule collection: up to MaxSchedules named
// schedules, a current-selection pointer, and every mutation the UI can
// perform. It is the single writer of persisted planner state.
package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/CS-UT/course-plan-sub000/internal/conflict"
	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/repository"
)

// DefaultMaxSchedules bounds how many schedules may exist at once.
const DefaultMaxSchedules = 5

// ── Store interface ─────────────────────────────────────────
//
// Design notes:
//   - Capacity and uniqueness violations are ordinary UI refusals, so
//     they surface as false/nil results, never as errors. Errors are
//     reserved for persistence failures.
//   - Adding a course always succeeds; the returned conflicts are
//     advisory and let the caller warn the user.
//   - The hover preview lives outside persisted state entirely. Persisted
//     schedules only ever hold mode "default"; hover/both appear in the
//     merged view returned by RenderCourses.
// ─────────────────────────────────────────────────────────────

// AddResult reports the outcome of a successful AddCourse call.
type AddResult struct {
	Course        model.SelectedCourse
	TimeConflicts []model.Course
	ExamConflicts []model.Course
}

// Store is the single source of truth for what is selected.
type Store interface {
	// AddCourse appends the course to the current schedule. A course
	// already present yields a nil result and no state change.
	AddCourse(ctx context.Context, course model.Course) (*AddResult, error)
	// RemoveCourse drops the matching entry; absent entries are a no-op.
	RemoveCourse(ctx context.Context, code, group string) (bool, error)
	// IsCourseSelected tests membership in the current schedule.
	IsCourseSelected(code, group string) bool

	// CreateSchedule inserts an empty schedule under the smallest unused
	// id and makes it current. Returns false at the schedule cap.
	CreateSchedule(ctx context.Context) (bool, error)
	// DuplicateSchedule is CreateSchedule seeded with a deep copy of the
	// current schedule's courses.
	DuplicateSchedule(ctx context.Context) (bool, error)
	// DeleteSchedule removes the schedule; the last remaining schedule
	// cannot be deleted. Deleting the current schedule moves the pointer
	// to the smallest remaining id.
	DeleteSchedule(ctx context.Context, id int) (bool, error)
	// SetCurrent moves the selection pointer; unknown ids return false.
	SetCurrent(ctx context.Context, id int) (bool, error)

	Current() model.Schedule
	Schedules() []model.Schedule
	// TotalUnits is the credit-unit sum of the current schedule,
	// recomputed on every read.
	TotalUnits() int

	// SetPreview installs an ephemeral hover course; ClearPreview drops
	// it. RenderCourses merges the preview into the current selection
	// with modes default/hover/both.
	SetPreview(course model.Course)
	ClearPreview()
	RenderCourses() []model.SelectedCourse
}

type store struct {
	repo         repository.StateRepository
	logger       *zap.Logger
	maxSchedules int

	state   model.PlannerState
	preview *model.Course
}

// New loads persisted state through repo, falling back to the default
// single empty schedule when storage is missing or corrupt. maxSchedules
// values below 1 fall back to DefaultMaxSchedules.
func New(ctx context.Context, repo repository.StateRepository, maxSchedules int, logger *zap.Logger) Store {
	if maxSchedules < 1 {
		maxSchedules = DefaultMaxSchedules
	}

	state, err := repo.Load(ctx)
	if err != nil {
		if err != repository.ErrStateNotFound {
			logger.Warn("planner state unreadable, starting fresh", zap.Error(err))
		}
		state = model.DefaultState()
	} else {
		state = sanitize(state)
	}

	return &store{
		repo:         repo,
		logger:       logger,
		maxSchedules: maxSchedules,
		state:        state,
	}
}

// ════════════════════════════════════════════════════════════
// Course operations
// ════════════════════════════════════════════════════════════

func (s *store) AddCourse(ctx context.Context, course model.Course) (*AddResult, error) {
	cur := s.current()
	if indexOf(cur.Courses, course.Code, course.Group) >= 0 {
		return nil, nil
	}

	selected := model.SelectedCourse{Course: course.Clone(), Mode: model.ModeDefault}
	timeConflicts := conflict.FindTimeConflicts(course, cur.Courses)
	examConflicts := conflict.FindExamConflicts(course, cur.Courses)

	cur.Courses = append(cur.Courses, selected)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return &AddResult{
		Course:        selected,
		TimeConflicts: timeConflicts,
		ExamConflicts: examConflicts,
	}, nil
}

func (s *store) RemoveCourse(ctx context.Context, code, group string) (bool, error) {
	cur := s.current()
	idx := indexOf(cur.Courses, code, group)
	if idx < 0 {
		return false, nil
	}
	cur.Courses = append(cur.Courses[:idx], cur.Courses[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) IsCourseSelected(code, group string) bool {
	return indexOf(s.current().Courses, code, group) >= 0
}

// ════════════════════════════════════════════════════════════
// Schedule operations
// ════════════════════════════════════════════════════════════

func (s *store) CreateSchedule(ctx context.Context) (bool, error) {
	return s.insertSchedule(ctx, nil)
}

func (s *store) DuplicateSchedule(ctx context.Context) (bool, error) {
	seed := s.current().Clone().Courses
	return s.insertSchedule(ctx, seed)
}

func (s *store) insertSchedule(ctx context.Context, seed []model.SelectedCourse) (bool, error) {
	if len(s.state.Schedules) >= s.maxSchedules {
		return false, nil
	}
	if seed == nil {
		seed = []model.SelectedCourse{}
	}

	id := smallestUnusedID(s.state.Schedules)
	s.state.Schedules = append(s.state.Schedules, model.Schedule{ID: id, Courses: seed})
	s.state.CurrentScheduleID = id

	if err := s.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) DeleteSchedule(ctx context.Context, id int) (bool, error) {
	if len(s.state.Schedules) <= 1 {
		return false, nil
	}

	idx := -1
	for i, sched := range s.state.Schedules {
		if sched.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	s.state.Schedules = append(s.state.Schedules[:idx], s.state.Schedules[idx+1:]...)
	if s.state.CurrentScheduleID == id {
		s.state.CurrentScheduleID = smallestID(s.state.Schedules)
	}

	if err := s.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) SetCurrent(ctx context.Context, id int) (bool, error) {
	for _, sched := range s.state.Schedules {
		if sched.ID == id {
			s.state.CurrentScheduleID = id
			if err := s.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ════════════════════════════════════════════════════════════
// Derived views
// ════════════════════════════════════════════════════════════

func (s *store) Current() model.Schedule {
	return s.current().Clone()
}

func (s *store) Schedules() []model.Schedule {
	out := make([]model.Schedule, 0, len(s.state.Schedules))
	for _, sched := range s.state.Schedules {
		out = append(out, sched.Clone())
	}
	return out
}

func (s *store) TotalUnits() int {
	total := 0
	for _, sc := range s.current().Courses {
		total += sc.Units
	}
	return total
}

func (s *store) SetPreview(course model.Course) {
	c := course.Clone()
	s.preview = &c
}

func (s *store) ClearPreview() {
	s.preview = nil
}

func (s *store) RenderCourses() []model.SelectedCourse {
	cur := s.current()
	out := make([]model.SelectedCourse, 0, len(cur.Courses)+1)
	previewSelected := false

	for _, sc := range cur.Courses {
		mode := model.ModeDefault
		if s.preview != nil && sc.Is(s.preview.Code, s.preview.Group) {
			mode = model.ModeBoth
			previewSelected = true
		}
		out = append(out, model.SelectedCourse{Course: sc.Course.Clone(), Mode: mode})
	}

	if s.preview != nil && !previewSelected {
		out = append(out, model.SelectedCourse{Course: s.preview.Clone(), Mode: model.ModeHover})
	}
	return out
}

// ── Internals ──

// current returns a pointer into state so mutations stick. The pointer
// is valid: sanitize and every mutation keep CurrentScheduleID pointing
// at an existing schedule.
func (s *store) current() *model.Schedule {
	for i := range s.state.Schedules {
		if s.state.Schedules[i].ID == s.state.CurrentScheduleID {
			return &s.state.Schedules[i]
		}
	}
	// Unreachable after sanitize; repair rather than panic.
	s.state.CurrentScheduleID = smallestID(s.state.Schedules)
	return &s.state.Schedules[0]
}

func (s *store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.state); err != nil {
		s.logger.Error("persist planner state", zap.Error(err))
		return err
	}
	return nil
}

// sanitize repairs a loaded state so the collection invariants hold:
// at least one schedule, a current pointer at an existing id, and only
// mode "default" entries (hover never persists).
func sanitize(state model.PlannerState) model.PlannerState {
	if len(state.Schedules) == 0 {
		return model.DefaultState()
	}
	for i := range state.Schedules {
		for j := range state.Schedules[i].Courses {
			state.Schedules[i].Courses[j].Mode = model.ModeDefault
		}
	}
	found := false
	for _, sched := range state.Schedules {
		if sched.ID == state.CurrentScheduleID {
			found = true
			break
		}
	}
	if !found {
		state.CurrentScheduleID = smallestID(state.Schedules)
	}
	return state
}

func indexOf(courses []model.SelectedCourse, code, group string) int {
	for i, sc := range courses {
		if sc.Is(code, group) {
			return i
		}
	}
	return -1
}

// smallestUnusedID fills gaps left by deletion, keeping ids compact
// without a monotonic counter.
func smallestUnusedID(schedules []model.Schedule) int {
	used := make(map[int]bool, len(schedules))
	for _, sched := range schedules {
		used[sched.ID] = true
	}
	for id := 0; ; id++ {
		if !used[id] {
			return id
		}
	}
}

func smallestID(schedules []model.Schedule) int {
	min := schedules[0].ID
	for _, sched := range schedules[1:] {
		if sched.ID < min {
			min = sched.ID
		}
	}
	return min
}
