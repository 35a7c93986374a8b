package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

func TestParsePlan_Roundtrip(t *testing.T) {
	term := testTerm(t)
	sc := algebra()
	sc.Course.Sessions = append(sc.Course.Sessions,
		model.Session{DayOfWeek: model.Monday, StartTime: "14:00", EndTime: "16:00"})

	doc, err := BuildICS([]model.SelectedCourse{sc}, term)
	if err != nil {
		t.Fatalf("BuildICS: %v", err)
	}

	courses, err := ParsePlan(strings.NewReader(doc), term.Location)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 merged course, got %d", len(courses))
	}

	got := courses[0]
	if got.Name != "Algebra" {
		t.Errorf("Name = %q, want Algebra", got.Name)
	}
	if len(got.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got.Sessions))
	}
	want := []model.Session{
		{DayOfWeek: model.Saturday, StartTime: "08:00", EndTime: "10:00"},
		{DayOfWeek: model.Monday, StartTime: "14:00", EndTime: "16:00"},
	}
	for i, s := range want {
		if got.Sessions[i] != s {
			t.Errorf("session %d = %+v, want %+v", i, got.Sessions[i], s)
		}
	}
	if got.Location != "Hall 2" {
		t.Errorf("Location = %q, want Hall 2", got.Location)
	}
	if got.Units != 1 || got.Gender != model.GenderMixed {
		t.Errorf("imported defaults wrong: units=%d gender=%v", got.Units, got.Gender)
	}
}

func TestParsePlan_SkipsExamEvents(t *testing.T) {
	term := testTerm(t)
	doc, err := BuildICS([]model.SelectedCourse{algebra()}, term)
	if err != nil {
		t.Fatalf("BuildICS: %v", err)
	}

	courses, err := ParsePlan(strings.NewReader(doc), term.Location)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	for _, c := range courses {
		if strings.HasPrefix(c.Name, examSummaryPrefix) {
			t.Errorf("exam event imported as a course: %q", c.Name)
		}
	}
	if len(courses) != 1 {
		t.Errorf("expected the class course only, got %d", len(courses))
	}
}

func TestParsePlan_EmptyPlan(t *testing.T) {
	term := testTerm(t)
	doc, err := BuildICS(nil, term)
	if err != nil {
		t.Fatalf("BuildICS: %v", err)
	}
	if _, err := ParsePlan(strings.NewReader(doc), term.Location); !errors.Is(err, ErrPlanEmpty) {
		t.Errorf("expected ErrPlanEmpty, got %v", err)
	}
}

func TestParsePlan_Garbage(t *testing.T) {
	term := testTerm(t)
	if _, err := ParsePlan(strings.NewReader("not a calendar"), term.Location); err == nil {
		t.Error("garbage input must fail to parse")
	}
}
