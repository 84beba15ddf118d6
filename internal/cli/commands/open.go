package commands

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// NewOpenCmd creates the open command
func NewOpenCmd(app *App) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open [page]",
		Short: "Open the rental site in browser",
		Long: `Open the rental site in browser.

The page is a path on the site, e.g. "dashboard" or "car-details?id=3".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			return runOpen(app, page, printOnly)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Only print the URL")

	return cmd
}

func runOpen(app *App, page string, printOnly bool) error {
	siteURL, err := SiteURL(app.Client.BaseURL(), page)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "URL: %s\n", siteURL)
	if printOnly {
		return nil
	}

	if err := openBrowser(siteURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, siteURL)
	}
	return nil
}

// SiteURL derives the site address from the API base URL, which lives under
// the site's /api path
func SiteURL(apiURL, page string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}

	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), "/api")
	u.RawQuery = ""

	page = strings.TrimPrefix(page, "/")
	if page == "" {
		u.Path += "/"
		return u.String(), nil
	}
	if path, query, ok := strings.Cut(page, "?"); ok {
		page = path
		u.RawQuery = query
	}
	u.Path += "/" + page
	return u.String(), nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
