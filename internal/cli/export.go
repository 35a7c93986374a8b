package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/CS-UT/course-plan-sub000/internal/catalog"
	"github.com/CS-UT/course-plan-sub000/internal/export"
	"github.com/CS-UT/course-plan-sub000/internal/layout"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current schedule",
}

var exportICSCmd = &cobra.Command{
	Use:   "ics PATH",
	Short: "Export as an iCalendar file anchored to the configured term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		term, err := a.term()
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteICS(f, a.store.Current().Courses, term); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", args[0])
		return nil
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx PATH",
	Short: "Export as a timetable workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := layout.Config{
			DayStartHour: a.cfg.Calendar.DayStartHour,
			DayEndHour:   a.cfg.Calendar.DayEndHour,
		}
		buf, err := export.WriteXLSX(a.store.Current().Courses, cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", args[0])
		return nil
	},
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List every dated meeting of the current schedule across the term",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		term, err := a.term()
		if err != nil {
			return err
		}

		meetings, err := export.Agenda(a.store.Current().Courses, term)
		if err != nil {
			return err
		}
		for _, m := range meetings {
			cmd.Printf("%s  %s-%s  %s (g%s)\n",
				m.Start.Format("2006-01-02 Mon"),
				m.Start.Format("15:04"), m.End.Format("15:04"),
				m.CourseName, m.Group)
		}
		cmd.Printf("%d meeting(s)\n", len(meetings))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import class events from an ICS plan as manual courses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		term, err := a.term()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		courses, err := export.ParsePlan(f, term.Location)
		if err != nil {
			return err
		}

		added := 0
		for _, c := range courses {
			// Imported events have no catalog identity; they enter the
			// planner as manual courses with synthesized codes.
			manual, err := catalog.NormalizeManual(c)
			if err != nil {
				cmd.Printf("skipping %q: %v\n", c.Name, err)
				continue
			}
			res, err := a.store.AddCourse(cmd.Context(), manual)
			if err != nil {
				return err
			}
			if res != nil {
				added++
				printConflicts(cmd, res.TimeConflicts, res.ExamConflicts)
			}
		}
		cmd.Printf("imported %d course(s), total %d unit(s)\n", added, a.store.TotalUnits())
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportICSCmd, exportXLSXCmd)
	RootCmd.AddCommand(exportCmd, agendaCmd, importCmd)
}
