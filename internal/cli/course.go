package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CS-UT/course-plan-sub000/internal/conflict"
	"github.com/CS-UT/course-plan-sub000/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add CODE GROUP",
	Short: "Add a section to the current schedule",
	Long:  "Adds the section and reports any time or exam clashes it creates. Clashes are warnings, never a refusal.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		course, ok := a.catalog.Find(args[0], args[1])
		if !ok {
			return fmt.Errorf("section %s group %s not in catalog", args[0], args[1])
		}

		res, err := a.store.AddCourse(cmd.Context(), course)
		if err != nil {
			return err
		}
		if res == nil {
			cmd.Printf("%s group %s is already selected\n", course.Code, course.Group)
			return nil
		}

		cmd.Printf("added %s group %s (%d units, total %d)\n",
			course.Code, course.Group, course.Units, a.store.TotalUnits())
		printConflicts(cmd, res.TimeConflicts, res.ExamConflicts)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm CODE GROUP",
	Short: "Remove a section from the current schedule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.store.RemoveCourse(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !removed {
			cmd.Printf("%s group %s is not selected\n", args[0], args[1])
			return nil
		}
		cmd.Printf("removed %s group %s (total %d units)\n", args[0], args[1], a.store.TotalUnits())
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check CODE GROUP",
	Short: "Preview the clashes a section would create, without adding it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		course, ok := a.catalog.Find(args[0], args[1])
		if !ok {
			return fmt.Errorf("section %s group %s not in catalog", args[0], args[1])
		}

		selected := a.store.Current().Courses
		timeConflicts := conflict.FindTimeConflicts(course, selected)
		examConflicts := conflict.FindExamConflicts(course, selected)
		if len(timeConflicts) == 0 && len(examConflicts) == 0 {
			cmd.Println("no clashes")
			return nil
		}
		printConflicts(cmd, timeConflicts, examConflicts)
		return nil
	},
}

func printConflicts(cmd *cobra.Command, timeConflicts, examConflicts []model.Course) {
	for _, c := range timeConflicts {
		cmd.Printf("warning: session clash with %s group %s (%s)\n", c.Code, c.Group, c.Name)
	}
	for _, c := range examConflicts {
		cmd.Printf("warning: exam clash with %s group %s (%s)\n", c.Code, c.Group, c.Name)
	}
}

func init() {
	RootCmd.AddCommand(addCmd, rmCmd, checkCmd)
}
