package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
)

// NewBookCmd creates the book command
func NewBookCmd(app *App) *cobra.Command {
	var form pages.BookingForm

	cmd := &cobra.Command{
		Use:   "book <car-id>",
		Short: "Book a car",
		Long: `Book a car for a date range.

Pickup and return locations default to where the car is parked.

Example:
  $ rentacar book 3 --pickup 2025-03-01 --return 2025-03-04`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("car", args[0])
			if err != nil {
				return err
			}
			form.CarID = id
			return runBook(cmd.Context(), app, form)
		},
	}

	cmd.Flags().StringVar(&form.PickupDate, "pickup", "", "Pickup date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.ReturnDate, "return", "", "Return date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&form.PickupLocationID, "pickup-location", 0, "Pickup location id")
	cmd.Flags().Int64Var(&form.ReturnLocationID, "return-location", 0, "Return location id")
	cmd.MarkFlagRequired("pickup")
	cmd.MarkFlagRequired("return")

	return cmd
}

func runBook(ctx context.Context, app *App, form pages.BookingForm) error {
	var err error
	app.withLoading(func() {
		err = app.show(app.Pages.Book(ctx, form))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.Out, "\nSee your bookings with: rentacar bookings")
	return nil
}
