package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the schedule collection",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules and mark the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		current := a.store.Current().ID
		for _, sched := range a.store.Schedules() {
			marker := " "
			if sched.ID == current {
				marker = "*"
			}
			units := 0
			for _, sc := range sched.Courses {
				units += sc.Units
			}
			cmd.Printf("%s schedule %d: %d course(s), %d unit(s)\n",
				marker, sched.ID, len(sched.Courses), units)
		}
		return nil
	},
}

var scheduleNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty schedule and switch to it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.store.CreateSchedule(cmd.Context())
		if err != nil {
			return err
		}
		if !created {
			cmd.Printf("schedule limit of %d reached\n", a.cfg.Planner.MaxSchedules)
			return nil
		}
		cmd.Printf("created schedule %d\n", a.store.Current().ID)
		return nil
	},
}

var scheduleDupCmd = &cobra.Command{
	Use:   "dup",
	Short: "Duplicate the current schedule and switch to the copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.store.DuplicateSchedule(cmd.Context())
		if err != nil {
			return err
		}
		if !created {
			cmd.Printf("schedule limit of %d reached\n", a.cfg.Planner.MaxSchedules)
			return nil
		}
		cmd.Printf("duplicated into schedule %d\n", a.store.Current().ID)
		return nil
	},
}

var scheduleRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a schedule (the last one cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		deleted, err := a.store.DeleteSchedule(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !deleted {
			cmd.Printf("schedule %d was not deleted\n", id)
			return nil
		}
		cmd.Printf("deleted schedule %d, current is %d\n", id, a.store.Current().ID)
		return nil
	},
}

var scheduleUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Switch the current schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		switched, err := a.store.SetCurrent(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !switched {
			cmd.Printf("no schedule %d\n", id)
			return nil
		}
		cmd.Printf("current schedule is %d\n", id)
		return nil
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleListCmd, scheduleNewCmd, scheduleDupCmd, scheduleRmCmd, scheduleUseCmd)
	RootCmd.AddCommand(scheduleCmd)
}
