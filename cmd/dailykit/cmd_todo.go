package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/ui"
)

var (
	todoPriority string
	todoCategory string
	todoRepeat   string
	todoDue      string
	todoPending  bool
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage to-do tasks",
}

var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := model.Task{
			Title:    strings.Join(args, " "),
			Priority: model.ParsePriority(todoPriority),
			Category: model.ParseCategory(todoCategory),
			Repeat:   model.ParseRepeat(todoRepeat),
		}
		if todoDue != "" {
			due, err := time.ParseInLocation(model.DateKeyLayout, todoDue, time.Local)
			if err != nil {
				return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", todoDue)
			}
			task.DueDate = &due
		}

		saved, ok := kit.Tasks.Add(cmd.Context(), task)
		if !ok {
			return errNotSaved("task")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added task %d\n", saved.ID)
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks := kit.Tasks.Items()
		if todoPending {
			var err error
			if tasks, err = kit.Tasks.Pending(cmd.Context()); err != nil {
				return fmt.Errorf("listing pending tasks: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTasks(tasks))
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task between done and pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, ok := kit.Tasks.Find(id); !ok {
			return fmt.Errorf("no task %d", id)
		}
		if !kit.Tasks.Toggle(cmd.Context(), id) {
			return errNotSaved("task")
		}
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !kit.Tasks.Remove(cmd.Context(), id) {
			return errNotSaved("task")
		}
		return nil
	},
}

var todoClearDoneCmd = &cobra.Command{
	Use:   "clear-done",
	Short: "Delete every completed task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := kit.Tasks.ClearCompleted(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d tasks\n", n)
		return err
	},
}

func init() {
	todoAddCmd.Flags().StringVar(&todoPriority, "priority", string(model.PriorityMedium), "high, medium or low")
	todoAddCmd.Flags().StringVar(&todoCategory, "category", string(model.CategoryPersonal), "work, home or personal")
	todoAddCmd.Flags().StringVar(&todoRepeat, "repeat", string(model.RepeatNone), "none, daily, weekly or monthly")
	todoAddCmd.Flags().StringVar(&todoDue, "due", "", "due date (YYYY-MM-DD)")
	todoListCmd.Flags().BoolVar(&todoPending, "pending", false, "only pending tasks")

	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoDoneCmd, todoRmCmd, todoClearDoneCmd)
}
