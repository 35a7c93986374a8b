package layout

import (
	"testing"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

func ref(code, start, end string) SessionRef {
	return SessionRef{
		CourseCode: code,
		Group:      "1",
		Session:    model.Session{DayOfWeek: model.Saturday, StartTime: start, EndTime: end},
	}
}

func byCode(placed []Placed) map[string]Placed {
	out := make(map[string]Placed, len(placed))
	for _, p := range placed {
		out[p.CourseCode] = p
	}
	return out
}

func TestPlaceDay_SingleSessionFullTrack(t *testing.T) {
	placed := PlaceDay([]SessionRef{ref("A", "08:00", "10:00")}, DefaultConfig())
	if len(placed) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placed))
	}
	p := placed[0]
	if p.Lane != 0 || p.TotalLanes != 1 || p.Clustered {
		t.Errorf("singleton should occupy the full track, got lane %d/%d clustered=%v",
			p.Lane, p.TotalLanes, p.Clustered)
	}
}

func TestPlaceDay_Fractions(t *testing.T) {
	cfg := Config{DayStartHour: 8, DayEndHour: 18}
	placed := PlaceDay([]SessionRef{ref("A", "08:00", "13:00")}, cfg)
	if len(placed) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placed))
	}
	if placed[0].Top != 0 {
		t.Errorf("Top = %v, want 0", placed[0].Top)
	}
	if placed[0].Bottom != 0.5 {
		t.Errorf("Bottom = %v, want 0.5", placed[0].Bottom)
	}
}

// The spec's reference scenario: two overlapping sessions share a
// two-lane cluster, a later disjoint session is a full-width singleton.
func TestPlaceDay_ClusterAndSingleton(t *testing.T) {
	placed := PlaceDay([]SessionRef{
		ref("A", "08:00", "10:00"),
		ref("B", "09:00", "11:00"),
		ref("C", "10:30", "11:30"),
	}, DefaultConfig())
	if len(placed) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placed))
	}

	got := byCode(placed)
	a, b, c := got["A"], got["B"], got["C"]

	if a.TotalLanes != 2 || b.TotalLanes != 2 {
		t.Errorf("A and B should share a two-lane cluster, got %d and %d", a.TotalLanes, b.TotalLanes)
	}
	if a.Lane == b.Lane {
		t.Errorf("A and B must occupy distinct lanes, both got %d", a.Lane)
	}
	if !a.Clustered || !b.Clustered {
		t.Error("A and B should be flagged as clustered")
	}
	if c.Lane != 0 || c.TotalLanes != 1 || c.Clustered {
		t.Errorf("C should be a singleton, got lane %d/%d clustered=%v", c.Lane, c.TotalLanes, c.Clustered)
	}
}

// Overlap is not transitive: A-B and B-C overlap while A-C do not, yet
// the whole chain must share one lane count.
func TestPlaceDay_NonTransitiveChain(t *testing.T) {
	placed := PlaceDay([]SessionRef{
		ref("A", "08:00", "10:00"),
		ref("B", "09:30", "11:30"),
		ref("C", "11:00", "12:00"),
	}, DefaultConfig())
	got := byCode(placed)
	a, b, c := got["A"], got["B"], got["C"]

	for code, p := range got {
		if p.TotalLanes != 2 {
			t.Errorf("%s: chain component should have 2 lanes, got %d", code, p.TotalLanes)
		}
		if !p.Clustered {
			t.Errorf("%s: chain member should be clustered", code)
		}
	}
	if a.Lane != 0 || b.Lane != 1 {
		t.Errorf("greedy assignment should give A lane 0 and B lane 1, got %d and %d", a.Lane, b.Lane)
	}
	// C does not overlap A, so lane 0 is free again.
	if c.Lane != 0 {
		t.Errorf("C should reuse lane 0, got %d", c.Lane)
	}
}

func TestPlaceDay_IdenticalStartKeepsInputOrder(t *testing.T) {
	placed := PlaceDay([]SessionRef{
		ref("A", "08:00", "10:00"),
		ref("B", "08:00", "09:00"),
	}, DefaultConfig())
	if placed[0].CourseCode != "A" || placed[1].CourseCode != "B" {
		t.Errorf("ties at the same start must keep input order, got %s then %s",
			placed[0].CourseCode, placed[1].CourseCode)
	}
	if placed[0].Lane != 0 || placed[1].Lane != 1 {
		t.Errorf("lanes should follow input order, got %d and %d", placed[0].Lane, placed[1].Lane)
	}
}

func TestPlaceWeek_GroupsByDay(t *testing.T) {
	courses := []model.SelectedCourse{
		{Course: model.Course{Code: "A", Group: "1", Name: "Algebra", Sessions: []model.Session{
			{DayOfWeek: model.Saturday, StartTime: "08:00", EndTime: "10:00"},
			{DayOfWeek: model.Monday, StartTime: "08:00", EndTime: "10:00"},
		}}, Mode: model.ModeDefault},
		{Course: model.Course{Code: "B", Group: "1", Name: "Biology", Sessions: []model.Session{
			{DayOfWeek: model.Saturday, StartTime: "09:00", EndTime: "11:00"},
		}}, Mode: model.ModeDefault},
	}

	week := PlaceWeek(courses, DefaultConfig())
	if len(week[model.Saturday]) != 2 {
		t.Errorf("Saturday should hold 2 sessions, got %d", len(week[model.Saturday]))
	}
	if len(week[model.Monday]) != 1 {
		t.Errorf("Monday should hold 1 session, got %d", len(week[model.Monday]))
	}
	if _, ok := week[model.Friday]; ok {
		t.Error("empty days should be absent from the map")
	}
	for _, p := range week[model.Saturday] {
		if !p.Clustered {
			t.Errorf("%s on Saturday should be clustered", p.CourseCode)
		}
	}
}
