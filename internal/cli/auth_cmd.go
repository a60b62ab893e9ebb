package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/session"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// promptCredentials asks for any credential field left empty by flags.
// Only used when stdout is a TTY.
func promptCredentials(app *App, empID, password *string) error {
	var fields []huh.Field
	if *empID == "" {
		fields = append(fields, huh.NewInput().
			Title("Employee ID").
			Value(empID).
			Validate(validateRequired("employee ID")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(validateRequired("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	if !app.IsInteractive {
		return fmt.Errorf("missing credentials; pass --emp-id and --password")
	}
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(okrtreeHuhTheme()).
		Run()
}

func newLoginCmd(app *App) *cobra.Command {
	var empID, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(app, &empID, &password); err != nil {
				return err
			}

			auth, err := app.Remote.Login(cmd.Context(), empID, password)
			if err != nil {
				if remote.IsUnauthorized(err) {
					// A rejected credential also invalidates whatever
					// snapshot an earlier login left behind.
					_ = app.Sessions.Clear()
					return fmt.Errorf("invalid employee ID or password")
				}
				return err
			}

			if err := app.Sessions.Save(auth.Token, *auth.User); err != nil {
				return fmt.Errorf("storing session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Signed in as %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(auth.User.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&empID, "emp-id", "", "employee ID")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var in remote.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := in.Validate(); err != nil {
				return err
			}

			user, err := app.Remote.Register(cmd.Context(), in)
			if err != nil {
				return err
			}

			// Registration does not issue a token; sign in right away.
			auth, err := app.Remote.Login(cmd.Context(), in.EmpID, in.Password)
			if err != nil {
				return fmt.Errorf("registered, but sign-in failed: %w", err)
			}
			if err := app.Sessions.Save(auth.Token, *auth.User); err != nil {
				return fmt.Errorf("storing session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Registered %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(user.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.EmpID, "emp-id", "", "employee ID")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (8+ characters)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Signed out."))
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Sessions.Load()
			if errors.Is(err, session.ErrNoSession) {
				return fmt.Errorf("not signed in; run `okrtree login`")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			user, err := app.Remote.User(context.Background(), snap.EmpID)
			if err != nil {
				// The backend may be unreachable; the snapshot still
				// says who holds the session.
				fmt.Fprintf(out, "%s (%s) %s\n",
					formatter.Bold(snap.User.Name), snap.EmpID,
					formatter.Dim("(cached, backend unreachable)"))
				return nil
			}

			fmt.Fprintf(out, "%s (%s)\n", formatter.Bold(user.Name), user.EmpID)
			if user.Email != "" {
				fmt.Fprintln(out, formatter.Dim(user.Email))
			}
			if user.Role != "" {
				fmt.Fprintln(out, formatter.Dim("role: "+user.Role))
			}
			return nil
		},
	}
}
