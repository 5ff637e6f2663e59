package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/store"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage team members",
	}

	cmd.AddCommand(newUserListCmd(app))

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members and their task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := app.Store.Users()
			if len(users) == 0 {
				fmt.Println("No users.")
				return nil
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				assigned := app.Store.FilterTasks(store.Filter{Assignee: u.ID})
				pending := 0
				for i := range assigned {
					if !assigned[i].Completed {
						pending++
					}
				}
				rows = append(rows, []string{
					u.ID,
					formatter.StyleBlue.Render(u.Initials()),
					u.Name,
					formatter.StyleDim.Render(u.Email),
					fmt.Sprintf("%d", len(assigned)),
					fmt.Sprintf("%d", pending),
				})
			}

			fmt.Print(formatter.RenderTable([]string{"ID", "", "NAME", "EMAIL", "TASKS", "PENDING"}, rows))
			return nil
		},
	}
	return cmd
}
