package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which API is used and who is signed in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(app)
		},
	}
}

func runStatus(app *App) error {
	fmt.Fprintf(app.Out, "API: %s\n", app.Client.BaseURL())

	user := app.Session.User()
	if user == nil {
		fmt.Fprintln(app.Out, "Not logged in. Run 'rentacar login' or 'rentacar register'.")
		return nil
	}

	fmt.Fprintf(app.Out, "Logged in as %s (%s)\n", user.FullName, user.Email)
	if user.IsAdmin {
		fmt.Fprintln(app.Out, "Role: Admin")
	}
	return nil
}
