package cli

import (
	"github.com/spf13/cobra"

	"github.com/CS-UT/course-plan-sub000/internal/conflict"
	"github.com/CS-UT/course-plan-sub000/internal/layout"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current schedule with its weekly layout and clashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		sched := a.store.Current()
		cmd.Printf("schedule %d: %d course(s), %d unit(s)\n",
			sched.ID, len(sched.Courses), a.store.TotalUnits())

		for _, sc := range sched.Courses {
			cmd.Printf("  %-12s g%-3s %-40s %du\n", sc.Code, sc.Group, sc.Name, sc.Units)
		}

		// Weekly layout, Saturday first. Lanes surface visual clashes.
		cfg := layout.Config{
			DayStartHour: a.cfg.Calendar.DayStartHour,
			DayEndHour:   a.cfg.Calendar.DayEndHour,
		}
		week := layout.PlaceWeek(a.store.RenderCourses(), cfg)
		for _, day := range timeutil.DisplayOrder() {
			placed := week[day]
			if len(placed) == 0 {
				continue
			}
			cmd.Printf("%s:\n", timeutil.DayName(day))
			for _, p := range placed {
				marker := ""
				if p.Clustered {
					marker = "  [clash]"
				}
				cmd.Printf("  %s-%s  %-40s lane %d/%d%s\n",
					p.Session.StartTime, p.Session.EndTime, p.CourseName,
					p.Lane+1, p.TotalLanes, marker)
			}
		}

		// Standing conflicts between the selected sections themselves,
		// e.g. from exam dates published after selection.
		for _, sc := range sched.Courses {
			for _, c := range conflict.FindExamConflicts(sc.Course, sched.Courses) {
				if sc.Code < c.Code || (sc.Code == c.Code && sc.Group < c.Group) {
					cmd.Printf("warning: %s g%s and %s g%s share an exam slot\n",
						sc.Code, sc.Group, c.Code, c.Group)
				}
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
