package export

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// Meeting is one concrete dated occurrence of a weekly session.
type Meeting struct {
	CourseCode   string
	Group        string
	CourseName   string
	SessionIndex int
	Start        time.Time
	End          time.Time
}

// Agenda expands every weekly session of the selection into dated
// meetings across the term. Hover-only previews are excluded. Output is
// chronological; meetings starting at the same instant keep course order.
func Agenda(courses []model.SelectedCourse, term Term) ([]Meeting, error) {
	var meetings []Meeting

	for _, sc := range courses {
		if sc.Mode == model.ModeHover {
			continue
		}
		for idx, session := range sc.Sessions {
			start, err := timeutil.ParseClock(session.StartTime)
			if err != nil {
				continue
			}
			end, err := timeutil.ParseClock(session.EndTime)
			if err != nil {
				continue
			}

			first := term.FirstOccurrence(session.DayOfWeek)
			rule, err := rrule.NewRRule(rrule.ROption{
				Freq:    rrule.WEEKLY,
				Dtstart: term.at(first, start),
				Until:   term.UntilUTC(),
			})
			if err != nil {
				return nil, err
			}

			duration := time.Duration(end-start) * time.Minute
			for _, occ := range rule.All() {
				meetings = append(meetings, Meeting{
					CourseCode:   sc.Code,
					Group:        sc.Group,
					CourseName:   sc.Name,
					SessionIndex: idx,
					Start:        occ,
					End:          occ.Add(duration),
				})
			}
		}
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Start.Before(meetings[j].Start)
	})
	return meetings, nil
}
