package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rentacar-dev/rentacar/internal/cli/userconfig"
	"github.com/rentacar-dev/rentacar/internal/config"
)

// NewUseCmd creates the use command
func NewUseCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "use [api-url]",
		Short: "Select the API to use for commands",
		Long: `Select the API to use for commands.

The --api flag and RENTACAR_API_URL still take precedence over the saved URL.

Examples:
  $ rentacar use https://cars.example.com/api
  $ rentacar use --reset                         # Back to the local backend`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{SkipLoadAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				if len(args) > 0 {
					return fmt.Errorf("--reset does not take an API URL")
				}
				return runUse(app, "")
			}
			if len(args) == 0 {
				return fmt.Errorf("an API URL is required (or --reset)")
			}
			return runUse(app, args[0])
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Forget the saved API URL")

	return cmd
}

func runUse(app *App, apiURL string) error {
	if apiURL != "" {
		normalized, err := normalizeAPIURL(apiURL)
		if err != nil {
			return err
		}
		apiURL = normalized
	}

	if err := userconfig.SetAPIURL(apiURL); err != nil {
		return fmt.Errorf("failed to save API URL: %w", err)
	}

	if apiURL == "" {
		fmt.Fprintf(app.Out, "Using the default API: %s\n", config.DefaultAPIURL)
		return nil
	}
	fmt.Fprintf(app.Out, "Selected API: %s\n", apiURL)
	return nil
}

func normalizeAPIURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return raw, nil
}
