package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/session"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var empID string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks assigned to a user (defaults to you)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if empID == "" {
				snap, err := app.Sessions.Load()
				if errors.Is(err, session.ErrNoSession) {
					return fmt.Errorf("not signed in; run `okrtree login` or pass --emp-id")
				}
				if err != nil {
					return err
				}
				empID = snap.EmpID
			}

			tasks, err := app.Remote.UserTasks(cmd.Context(), empID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, formatter.Dim("No tasks assigned."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(out, "%s %s  %s  %s\n",
					formatter.StatusPill(t.Status),
					t.Title,
					formatter.RenderProgress(t.ProgressPercentage, 6),
					formatter.DueDateStyled(t.DueDate),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&empID, "emp-id", "", "employee ID to list tasks for")
	return cmd
}
