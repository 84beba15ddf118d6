package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/prompt"
)

// NewLoginCmd creates the login command
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loginForm(email, password)
			if err != nil {
				return err
			}
			return runLogin(cmd.Context(), app, form)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set RENTACAR_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set RENTACAR_PASSWORD, will prompt if not provided)")

	return cmd
}

// loginForm fills the form from flags, then the environment (useful for
// scripts), then interactive prompts
func loginForm(email, password string) (pages.LoginForm, error) {
	if email == "" {
		email = os.Getenv("RENTACAR_EMAIL")
	}
	if password == "" {
		password = os.Getenv("RENTACAR_PASSWORD")
	}

	var err error
	if email == "" {
		email, err = prompt.Text("Email")
		if err != nil {
			return pages.LoginForm{}, fmt.Errorf("email is required (use --email flag or RENTACAR_EMAIL env var)")
		}
	}
	if password == "" {
		password, err = prompt.Password("Password")
		if err != nil {
			return pages.LoginForm{}, fmt.Errorf("password is required in non-interactive mode (use --password flag or RENTACAR_PASSWORD env var)")
		}
	}

	return pages.LoginForm{Email: email, Password: password}, nil
}

func runLogin(ctx context.Context, app *App, form pages.LoginForm) error {
	var err error
	app.withLoading(func() {
		err = app.show(app.Pages.Login(ctx, form))
	})
	if err != nil {
		return err
	}

	if user := app.Session.User(); user != nil {
		fmt.Fprintf(app.Out, "  User: %s (%s)\n", user.FullName, user.Email)
		if user.IsAdmin {
			fmt.Fprintln(app.Out, "  Role: Admin")
		}
	}
	return nil
}
