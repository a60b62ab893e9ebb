package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "okrtree" command and registers all
// subcommands against the provided App. Running it without a subcommand
// starts the interactive TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "okrtree",
		Short: "Hierarchical OKR objectives and tasks, in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newTasksCmd(app),
		newTreeCmd(app),
	)

	return root
}
