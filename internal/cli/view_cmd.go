package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/store"
	"github.com/acarreno/roadmap/internal/timeline"
)

func newViewCmd(app *App) *cobra.Command {
	var mode, date, assignee, status string
	var width int

	cmd := &cobra.Command{
		Use:   "view [list|week|month|quarter]",
		Short: "Render a roadmap view",
		Long: `Render a roadmap view. On an interactive terminal this opens the TUI;
otherwise (or with --plain) the requested view is printed once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				mode = args[0]
			}
			vm := domain.ViewMode(mode)
			if !domain.ValidViewModes[vm] {
				return fmt.Errorf("invalid view mode %q (list|week|month|quarter)", mode)
			}

			plain, _ := cmd.Flags().GetBool("plain")
			if !plain && app.IsInteractive != nil && app.IsInteractive() {
				return runTUIAt(app, vm)
			}

			anchor := time.Now()
			if date != "" {
				d, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				anchor = d
			}

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
			users := app.Store.Users()
			firstDay := app.Config.FirstDay()

			switch vm {
			case domain.ViewWeek:
				fmt.Print(renderWeekView(tasks, timeline.WeekOf(anchor, firstDay), width))
			case domain.ViewMonth:
				fmt.Print(renderMonthView(tasks, anchor, firstDay, width))
			case domain.ViewQuarter:
				fmt.Print(renderQuarterView(tasks, anchor, width))
			default:
				fmt.Print(renderListView(tasks, users))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "list", "View mode (list|week|month|quarter)")
	cmd.Flags().StringVar(&date, "date", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assigned user (ID or name)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (all|pending|completed)")
	cmd.Flags().IntVar(&width, "width", 100, "Render width in terminal cells")
	cmd.Flags().Bool("plain", false, "Print once instead of opening the TUI")

	return cmd
}
