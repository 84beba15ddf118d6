package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/prompt"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// NewBookingsCmd creates the bookings (dashboard) command
func NewBookingsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"dashboard", "ls"},
		Short:   "Show your dashboard and bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookings(cmd.Context(), app)
		},
	}
}

func runBookings(ctx context.Context, app *App) error {
	var (
		dash view.Dashboard
		err  error
	)
	app.withLoading(func() {
		dash, err = app.Pages.Dashboard(ctx)
	})
	if err != nil {
		return err
	}

	app.Renderer.Dashboard(dash)
	if dash.Alert.IsError() {
		return ErrAlertShown
	}
	return nil
}

// NewCancelCmd creates the cancel command
func NewCancelCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel one of your bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking", args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := prompt.Confirm("Are you sure you want to cancel this booking?")
				if err != nil {
					return fmt.Errorf("confirmation required (use --yes to skip): %w", err)
				}
				if !ok {
					fmt.Fprintln(app.Out, "Booking kept.")
					return nil
				}
			}

			return runCancel(cmd.Context(), app, id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runCancel(ctx context.Context, app *App, id int64) error {
	if !app.Session.LoggedIn() {
		return pages.ErrLoginRequired
	}

	var (
		alert *view.Alert
		dash  *view.Dashboard
	)
	app.withLoading(func() {
		alert, dash = app.Pages.CancelBooking(ctx, id)
	})
	if err := app.show(alert); err != nil {
		return err
	}

	if dash != nil {
		fmt.Fprintln(app.Out)
		app.Renderer.Dashboard(*dash)
	}
	return nil
}
