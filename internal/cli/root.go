package cli

import (
	"github.com/spf13/cobra"

	"github.com/acarreno/roadmap/internal/config"
	"github.com/acarreno/roadmap/internal/store"
)

// App holds everything CLI commands operate on.
type App struct {
	Store  store.Store
	Config *config.Config

	// IsInteractive reports whether stdin is an interactive terminal;
	// when it is, running with no arguments opens the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "roadmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "Task planner with week, month and quarter timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTaskCmd(app),
		newSubtaskCmd(app),
		newUserCmd(app),
		newViewCmd(app),
	)

	return root
}
