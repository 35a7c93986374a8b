// Package conflict implements pairwise session-time overlap and exam-slot
// collision detection. All functions are pure and operate on value inputs;
// conflicts are advisory and never block a selection.
package conflict

import (
	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// SessionsOverlap reports whether two weekly sessions collide: same
// weekday and intersecting half-open intervals [start, end).
func SessionsOverlap(a, b model.Session) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return false
	}
	return timeutil.ClockLess(a.StartTime, b.EndTime) && timeutil.ClockLess(b.StartTime, a.EndTime)
}

// ExamsConflict reports whether two courses share an exam slot. A course
// with no exam date never conflicts: absent data is not a collision.
// Date and time strings are digit-normalized before comparison, so a
// catalog row and a manually entered course describing the same slot in
// different digit encodings still collide.
func ExamsConflict(a, b model.Course) bool {
	if a.ExamDate == "" || b.ExamDate == "" {
		return false
	}
	return timeutil.NormalizeDigits(a.ExamDate) == timeutil.NormalizeDigits(b.ExamDate) &&
		timeutil.NormalizeDigits(a.ExamTime) == timeutil.NormalizeDigits(b.ExamTime)
}

// FindTimeConflicts returns every selected course (excluding the candidate
// itself) with at least one session overlapping a session of the
// candidate. Each conflicting course is reported once, no matter how many
// session pairs collide.
func FindTimeConflicts(candidate model.Course, selected []model.SelectedCourse) []model.Course {
	var conflicts []model.Course
	for _, sc := range selected {
		if sc.Is(candidate.Code, candidate.Group) {
			continue
		}
		if coursesOverlap(candidate, sc.Course) {
			conflicts = append(conflicts, sc.Course)
		}
	}
	return conflicts
}

// FindExamConflicts returns every selected course (excluding the
// candidate itself) sharing the candidate's exam slot.
func FindExamConflicts(candidate model.Course, selected []model.SelectedCourse) []model.Course {
	var conflicts []model.Course
	for _, sc := range selected {
		if sc.Is(candidate.Code, candidate.Group) {
			continue
		}
		if ExamsConflict(candidate, sc.Course) {
			conflicts = append(conflicts, sc.Course)
		}
	}
	return conflicts
}

func coursesOverlap(a, b model.Course) bool {
	for _, sa := range a.Sessions {
		for _, sb := range b.Sessions {
			if SessionsOverlap(sa, sb) {
				return true
			}
		}
	}
	return false
}
