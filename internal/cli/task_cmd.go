package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/store"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage roadmap tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: name, Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)}
	}
	return t, nil
}

func parseStatusFlag(value string) (domain.StatusFilter, error) {
	s := domain.StatusFilter(value)
	if !domain.ValidStatusFilters[s] {
		return "", fmt.Errorf("invalid status %q (all|pending|completed)", value)
	}
	return s, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, start, end, assignee, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("startDate", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("endDate", end)
			if err != nil {
				return err
			}
			userID, err := resolveAssignee(app, assignee)
			if err != nil {
				return err
			}

			t, err := app.Store.CreateTask(context.Background(), store.TaskDraft{
				Title:          title,
				Description:    description,
				StartDate:      startDate,
				EndDate:        endDate,
				AssignedUserID: userID,
				Color:          color,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created task %s (%s)\n", t.Title, formatter.ShortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned user (ID or name)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (hex, e.g. #83a598)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("assignee")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var assignee, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := store.Filter{Status: domain.StatusAll}
			if assignee != "" {
				userID, err := resolveAssignee(app, assignee)
				if err != nil {
					return err
				}
				f.Assignee = userID
			}
			if status != "" {
				s, err := parseStatusFlag(status)
				if err != nil {
					return err
				}
				f.Status = s
			}

			tasks := app.Store.FilterTasks(f)
			if len(tasks) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			fmt.Print(formatter.RenderTaskTable(tasks, app.Store.Users()))
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assigned user (ID or name)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (all|pending|completed)")

	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show task details and checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Store.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderTaskDetail(t, app.Store.Users()))
			return nil
		},
	}
	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, start, end, assignee, color string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("start") {
				d, err := parseDateFlag("startDate", start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if cmd.Flags().Changed("end") {
				d, err := parseDateFlag("endDate", end)
				if err != nil {
					return err
				}
				patch.EndDate = &d
			}
			if cmd.Flags().Changed("assignee") {
				userID, err := resolveAssignee(app, assignee)
				if err != nil {
					return err
				}
				patch.AssignedUserID = &userID
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			t, err := app.Store.UpdateTask(context.Background(), id, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated task %s (%s)\n", t.Title, formatter.ShortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned user (ID or name)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			completed := !reopen
			t, err := app.Store.UpdateTask(context.Background(), id, domain.TaskPatch{Completed: &completed})
			if err != nil {
				return err
			}
			if completed {
				fmt.Printf("Completed task %s\n", t.Title)
			} else {
				fmt.Printf("Reopened task %s\n", t.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Mark the task pending again")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Store.GetTask(id)
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTask(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", t.Title)
			return nil
		},
	}
	return cmd
}
