package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/prompt"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// NewLocationsCmd creates the locations command
func NewLocationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List pickup locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []view.Option
			app.withLoading(func() {
				options = app.Pages.Locations(cmd.Context())
			})
			app.Renderer.Locations(options)
			return nil
		},
	}
}

// NewCarsCmd creates the cars command
func NewCarsCmd(app *App) *cobra.Command {
	var (
		filters      pages.Filters
		query        string
		pickLocation bool
	)

	cmd := &cobra.Command{
		Use:     "cars",
		Aliases: []string{"browse"},
		Short:   "Browse available cars",
		Long: `Browse available cars, optionally filtered.

Filters can also be given as a search query, e.g. one copied from the site:

  $ rentacar cars --query "location=2&pickup=2025-03-01&return=2025-03-04"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apply := false
			if query != "" {
				fromQuery, ok, err := pages.FiltersFromQuery(query)
				if err != nil {
					return err
				}
				filters = fromQuery.Merge(filters)
				apply = ok
			}
			for _, name := range []string{"location", "type", "min-price", "max-price", "pickup", "return"} {
				if cmd.Flags().Changed(name) {
					apply = true
				}
			}

			if pickLocation {
				option, err := prompt.SelectOption("Pickup location", app.Pages.Locations(cmd.Context()))
				if err != nil {
					return err
				}
				filters.LocationID = option.Value
				apply = true
			}

			return runCars(cmd.Context(), app, filters, apply)
		},
	}

	cmd.Flags().StringVar(&filters.LocationID, "location", "", "Location id (see 'rentacar locations')")
	cmd.Flags().StringVar(&filters.CarType, "type", "", "Car type, e.g. SUV")
	cmd.Flags().StringVar(&filters.MinPrice, "min-price", "", "Minimum price per day")
	cmd.Flags().StringVar(&filters.MaxPrice, "max-price", "", "Maximum price per day")
	cmd.Flags().StringVar(&filters.Pickup, "pickup", "", "Pickup date (YYYY-MM-DD), shows estimated totals with --return")
	cmd.Flags().StringVar(&filters.Return, "return", "", "Return date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&query, "query", "", "Search query string (location, pickup, return, type, min_price, max_price)")
	cmd.Flags().BoolVar(&pickLocation, "pick-location", false, "Choose the location interactively")

	return cmd
}

func runCars(ctx context.Context, app *App, filters pages.Filters, apply bool) error {
	var grid view.CarGrid
	app.withLoading(func() {
		grid = app.Pages.Browse(ctx, filters, apply)
	})
	app.Renderer.CarGrid(grid)
	return nil
}

// NewCarCmd creates the car details command
func NewCarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "car <car-id>",
		Short: "Show a car's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("car", args[0])
			if err != nil {
				return err
			}
			return runCar(cmd.Context(), app, id)
		},
	}
}

func runCar(ctx context.Context, app *App, id int64) error {
	var (
		details view.CarDetails
		alert   *view.Alert
	)
	app.withLoading(func() {
		details, alert = app.Pages.CarDetails(ctx, id)
	})
	if alert != nil {
		return app.show(alert)
	}

	app.Renderer.CarDetails(details)
	fmt.Fprintf(app.Out, "\nBook it with: rentacar book %d --pickup YYYY-MM-DD --return YYYY-MM-DD\n", id)
	return nil
}
