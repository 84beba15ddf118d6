package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/prompt"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd(app *App) *cobra.Command {
	var form pages.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account and sign in to it.

Missing fields are prompted for when running in a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := completeRegisterForm(&form, cmd.Flags().Changed("confirm-password")); err != nil {
				return err
			}
			return runRegister(cmd.Context(), app, form)
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "Password again (defaults to --password)")

	return cmd
}

// completeRegisterForm prompts for missing fields. Without a terminal the
// form is left as given and validation reports what is missing.
func completeRegisterForm(form *pages.RegisterForm, confirmGiven bool) error {
	if !prompt.IsInteractive() {
		if !confirmGiven {
			form.ConfirmPassword = form.Password
		}
		return nil
	}

	fields := []struct {
		value *string
		label string
	}{
		{&form.FullName, "Full name"},
		{&form.Email, "Email"},
		{&form.Phone, "Phone"},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := prompt.Text(f.label)
		if err != nil {
			return fmt.Errorf("%s is required: %w", f.label, err)
		}
		*f.value = v
	}

	if form.Password == "" {
		pw, err := prompt.Password("Password")
		if err != nil {
			return fmt.Errorf("password is required: %w", err)
		}
		form.Password = pw

		confirm, err := prompt.Password("Confirm password")
		if err != nil {
			return fmt.Errorf("password confirmation is required: %w", err)
		}
		form.ConfirmPassword = confirm
	} else if !confirmGiven {
		form.ConfirmPassword = form.Password
	}
	return nil
}

func runRegister(ctx context.Context, app *App, form pages.RegisterForm) error {
	var err error
	app.withLoading(func() {
		err = app.show(app.Pages.Register(ctx, form))
	})
	return err
}
