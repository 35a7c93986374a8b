// Package layout computes render geometry for one day of the timetable:
// fractional positions on the time axis plus lane assignments so that
// overlapping sessions draw side by side instead of on top of each other.
package layout

import (
	"sort"

	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// Config defines the visible time window of the day axis.
type Config struct {
	DayStartHour int
	DayEndHour   int
}

// DefaultConfig covers every catalog time in practice.
func DefaultConfig() Config {
	return Config{DayStartHour: 7, DayEndHour: 20}
}

// SessionRef ties one session to its owning section for rendering.
type SessionRef struct {
	CourseCode string
	Group      string
	CourseName string
	Mode       model.CourseMode
	Session    model.Session
}

// Placed is a session with its computed geometry. Top and Bottom are
// fractions of the day window; sessions outside the window produce
// fractions outside [0, 1] and the caller is expected to configure a
// window wide enough that this does not happen.
type Placed struct {
	SessionRef
	Top       float64
	Bottom    float64
	Lane      int
	TotalLanes int
	Clustered bool
}

// PlaceDay assigns geometry to the sessions of one day.
//
// Sessions are sorted by start fraction (stable, so ties keep input
// order), lanes are assigned greedily (smallest index not used by an
// already placed overlapping session), and lane counts are normalized per
// connected component of the overlap graph. Components are needed because
// overlap is not transitive: A-B and B-C overlapping does not make A and
// C overlap, yet all three must share one lane count to render evenly.
func PlaceDay(sessions []SessionRef, cfg Config) []Placed {
	if len(sessions) == 0 {
		return nil
	}

	windowStart := float64(cfg.DayStartHour * 60)
	windowLen := float64((cfg.DayEndHour - cfg.DayStartHour) * 60)
	if windowLen <= 0 {
		windowLen = 1
	}

	placed := make([]Placed, 0, len(sessions))
	for _, ref := range sessions {
		start, err := timeutil.ParseClock(ref.Session.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(ref.Session.EndTime)
		if err != nil {
			continue
		}
		placed = append(placed, Placed{
			SessionRef: ref,
			Top:        (float64(start) - windowStart) / windowLen,
			Bottom:     (float64(end) - windowStart) / windowLen,
		})
	}

	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Top < placed[j].Top
	})

	// Greedy lane assignment against already placed overlapping sessions.
	for i := range placed {
		used := map[int]bool{}
		for j := 0; j < i; j++ {
			if fractionsOverlap(placed[i], placed[j]) {
				used[placed[j].Lane] = true
			}
		}
		lane := 0
		for used[lane] {
			lane++
		}
		placed[i].Lane = lane
	}

	normalizeComponents(placed)
	return placed
}

// PlaceWeek groups every session of the given courses by weekday and lays
// each day out independently. Course order is preserved within a day, so
// placement is deterministic for snapshot comparisons.
func PlaceWeek(courses []model.SelectedCourse, cfg Config) map[model.Weekday][]Placed {
	byDay := make(map[model.Weekday][]SessionRef)
	for _, sc := range courses {
		for _, s := range sc.Sessions {
			byDay[s.DayOfWeek] = append(byDay[s.DayOfWeek], SessionRef{
				CourseCode: sc.Code,
				Group:      sc.Group,
				CourseName: sc.Name,
				Mode:       sc.Mode,
				Session:    s,
			})
		}
	}

	week := make(map[model.Weekday][]Placed, len(byDay))
	for day, refs := range byDay {
		if out := PlaceDay(refs, cfg); len(out) > 0 {
			week[day] = out
		}
	}
	return week
}

func fractionsOverlap(a, b Placed) bool {
	return a.Top < b.Bottom && b.Top < a.Bottom
}

// normalizeComponents walks the overlap graph (BFS) and applies
// TotalLanes = max lane + 1 uniformly to each connected component.
// Components with more than one session are flagged as clustered.
func normalizeComponents(placed []Placed) {
	n := len(placed)
	visited := make([]bool, n)

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}

		component := []int{i}
		visited[i] = true
		for head := 0; head < len(component); head++ {
			cur := component[head]
			for j := 0; j < n; j++ {
				if !visited[j] && fractionsOverlap(placed[cur], placed[j]) {
					visited[j] = true
					component = append(component, j)
				}
			}
		}

		maxLane := 0
		for _, idx := range component {
			if placed[idx].Lane > maxLane {
				maxLane = placed[idx].Lane
			}
		}
		for _, idx := range component {
			placed[idx].TotalLanes = maxLane + 1
			placed[idx].Clustered = len(component) > 1
		}
	}
}
