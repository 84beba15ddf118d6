package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), app)
		},
	}
}

func runLogout(ctx context.Context, app *App) error {
	if !app.Session.LoggedIn() {
		fmt.Fprintln(app.Out, "Not logged in.")
		return nil
	}

	alert := app.Pages.Logout(ctx)
	if alert == nil {
		// the session stays as it was
		return fmt.Errorf("logout failed, you are still logged in")
	}
	return app.show(alert)
}
