package cli

import (
	"fmt"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/shape"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [rootID]",
		Short: "Print an objective tree",
		Long: `Print one objective tree, or all trees when no root ID is given,
as an indented outline with level badges and progress bars.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var rootIDs []string
			if len(args) == 1 {
				rootIDs = []string{args[0]}
			} else {
				roots, err := app.Remote.RootObjectives(ctx)
				if err != nil {
					return err
				}
				if len(roots) == 0 {
					fmt.Fprintln(out, formatter.Dim("No objective trees."))
					return nil
				}
				for _, r := range roots {
					rootIDs = append(rootIDs, r.ID)
				}
			}

			for i, id := range rootIDs {
				raw, err := app.Remote.ObjectiveTree(ctx, id)
				if err != nil {
					return err
				}
				root, err := shape.Build(raw)
				if err != nil {
					return fmt.Errorf("tree %s: %w", id, err)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, formatter.RenderTree(formatter.FlattenTree(root)))
			}
			return nil
		},
	}
	return cmd
}
