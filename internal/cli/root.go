package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/commands"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree around app
func NewRootCmd(app *commands.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rentacar",
		Short: "Rentacar - Car rental from your terminal",
		Long: `Rentacar CLI - Browse cars, book them and manage your bookings.

Every command works against the rental site's API. Your session is kept in
the system keychain, so you stay logged in between commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, skip := cmd.Annotations[commands.SkipLoadAnnotation]; skip {
				return nil
			}
			return app.Load(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.Options.APIURL, "api", "", "API base URL (overrides RENTACAR_API_URL and 'rentacar use')")
	rootCmd.PersistentFlags().StringVar(&app.Options.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&app.Options.Nav, "nav", false, "Show the navigation menu before the output")

	rootCmd.AddCommand(&cobra.Command{
		Use:         "version",
		Short:       "Print the version number",
		Annotations: map[string]string{commands.SkipLoadAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "rentacar version %s\n", app.Version)
		},
	})

	// Account
	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewRegisterCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewStatusCmd(app))

	// Catalog
	rootCmd.AddCommand(commands.NewLocationsCmd(app))
	rootCmd.AddCommand(commands.NewCarsCmd(app))
	rootCmd.AddCommand(commands.NewCarCmd(app))

	// Bookings
	rootCmd.AddCommand(commands.NewBookCmd(app))
	rootCmd.AddCommand(commands.NewBookingsCmd(app))
	rootCmd.AddCommand(commands.NewCancelCmd(app))
	rootCmd.AddCommand(commands.NewAdminCmd(app))

	rootCmd.AddCommand(commands.NewUseCmd(app))
	rootCmd.AddCommand(commands.NewOpenCmd(app))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	app := commands.NewApp(version)
	if err := NewRootCmd(app).Execute(); err != nil {
		if !errors.Is(err, commands.ErrAlertShown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
