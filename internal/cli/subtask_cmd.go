package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/domain"
)

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage task checklists",
	}

	cmd.AddCommand(
		newSubtaskAddCmd(app),
		newSubtaskToggleCmd(app),
		newSubtaskRenameCmd(app),
		newSubtaskRemoveCmd(app),
	)

	return cmd
}

// resolveTaskSubtask resolves a task reference and a subtask reference
// within it, both accepting full IDs or unique prefixes.
func resolveTaskSubtask(app *App, taskRef, subRef string) (taskID, subtaskID string, err error) {
	taskID, err = resolveTaskID(app, taskRef)
	if err != nil {
		return "", "", err
	}
	t, err := app.Store.GetTask(taskID)
	if err != nil {
		return "", "", err
	}
	subtaskID, err = resolveSubtaskID(t, subRef)
	if err != nil {
		return "", "", err
	}
	return taskID, subtaskID, nil
}

func newSubtaskAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add TASK",
		Short: "Add a checklist item to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Store.AddSubtask(context.Background(), taskID, title)
			if err != nil {
				return err
			}
			fmt.Printf("Added subtask %s (%s)\n", s.Title, formatter.ShortID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Subtask title")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newSubtaskToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle TASK SUBTASK",
		Short: "Flip a checklist item between done and pending",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, subtaskID, err := resolveTaskSubtask(app, args[0], args[1])
			if err != nil {
				return err
			}
			t, err := app.Store.GetTask(taskID)
			if err != nil {
				return err
			}
			sub := t.Subtask(subtaskID)
			if sub == nil {
				return &domain.NotFoundError{Entity: "subtask", ID: subtaskID}
			}
			completed := !sub.Completed
			if err := app.Store.ToggleSubtask(context.Background(), taskID, subtaskID, completed); err != nil {
				return err
			}
			state := "pending"
			if completed {
				state = "done"
			}
			fmt.Printf("Subtask %s is now %s\n", sub.Title, state)
			return nil
		},
	}
	return cmd
}

func newSubtaskRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename TASK SUBTASK",
		Short: "Rename a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, subtaskID, err := resolveTaskSubtask(app, args[0], args[1])
			if err != nil {
				return err
			}
			patch := domain.SubtaskPatch{Title: &title}
			if err := app.Store.UpdateSubtask(context.Background(), taskID, subtaskID, patch); err != nil {
				return err
			}
			fmt.Printf("Renamed subtask to %s\n", title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New subtask title")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newSubtaskRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove TASK SUBTASK",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, subtaskID, err := resolveTaskSubtask(app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteSubtask(context.Background(), taskID, subtaskID); err != nil {
				return err
			}
			fmt.Printf("Removed subtask %s\n", formatter.ShortID(subtaskID))
			return nil
		},
	}
	return cmd
}
