package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// NewAdminCmd creates the admin command group
func NewAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Fleet and booking administration (admins only)",
	}

	cmd.AddCommand(newAdminBookingsCmd(app))
	cmd.AddCommand(newAdminAddCarCmd(app))
	cmd.AddCommand(newAdminUpdateCarCmd(app))

	return cmd
}

func newAdminBookingsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List every booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminBookings(cmd.Context(), app)
		},
	}
}

func runAdminBookings(ctx context.Context, app *App) error {
	var (
		cards []view.BookingCard
		alert *view.Alert
	)
	app.withLoading(func() {
		cards, alert = app.Pages.AdminBookings(ctx)
	})
	if alert != nil {
		return app.show(alert)
	}

	app.Renderer.Bookings(cards)
	return nil
}

func newAdminAddCarCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add-car -f <file>",
		Short: "Add a car from a YAML or JSON definition",
		Long: `Add a car from a YAML or JSON definition file.

Example car.yaml:
  name: Kia Picanto
  brand: Kia
  model: Picanto
  year: 2022
  car_type: Compact
  seats: 4
  transmission: Manual
  fuel_type: Gasoline
  price_per_day: 29.99
  location_id: 1
  features: Bluetooth, Air Conditioning`,
		RunE: func(cmd *cobra.Command, args []string) error {
			car, err := pages.LoadCarFile(file)
			if err != nil {
				return err
			}

			var alert *view.Alert
			app.withLoading(func() {
				alert = app.Pages.AddCar(cmd.Context(), car)
			})
			return app.show(alert)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Car definition file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newAdminUpdateCarCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update-car <car-id> -f <file>",
		Short: "Change a car's fields from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("car", args[0])
			if err != nil {
				return err
			}
			fields, err := pages.LoadCarUpdateFile(file)
			if err != nil {
				return err
			}

			var alert *view.Alert
			app.withLoading(func() {
				alert = app.Pages.UpdateCar(cmd.Context(), id, fields)
			})
			return app.show(alert)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with the fields to change")
	cmd.MarkFlagRequired("file")

	return cmd
}
