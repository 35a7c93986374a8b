package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the course catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every offered section",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		printCourses(cmd, a.catalog.All())
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search sections by name, code or instructor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		matches := a.catalog.Search(strings.Join(args, " "))
		if len(matches) == 0 {
			cmd.Println("no matching sections")
			return nil
		}
		printCourses(cmd, matches)
		return nil
	},
}

func printCourses(cmd *cobra.Command, courses []model.Course) {
	for _, c := range courses {
		cmd.Printf("%-12s g%-3s %-40s %du %s\n",
			c.Code, c.Group, c.Name, c.Units, c.Instructor)
		for _, s := range c.Sessions {
			cmd.Printf("    %s %s-%s\n", timeutil.DayName(s.DayOfWeek), s.StartTime, s.EndTime)
		}
		if c.ExamDate != "" {
			exam := c.ExamDate
			if c.ExamTime != "" {
				exam += " " + c.ExamTime
			}
			cmd.Printf("    exam %s\n", exam)
		}
	}
	cmd.Printf("%d section(s)\n", len(courses))
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogSearchCmd)
	RootCmd.AddCommand(catalogCmd)
}
