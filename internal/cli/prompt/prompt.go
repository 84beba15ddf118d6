// Package prompt holds the interactive bits of the CLI: choosing the API to
// talk to, picking from lists, confirmations and password entry.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/rentacar-dev/rentacar/internal/cli/userconfig"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
	"github.com/rentacar-dev/rentacar/internal/config"
)

// ErrNotInteractive is returned when input is needed but stdin is not a terminal
var ErrNotInteractive = errors.New("stdin is not a terminal")

// ResolveAPIURL determines which backend to use based on the following priority:
// 1. The --api flag
// 2. RENTACAR_API_URL
// 3. The URL saved with 'rentacar use'
// 4. The default local backend
func ResolveAPIURL(flagURL string, cfg *config.Config) (string, error) {
	if flagURL != "" {
		return strings.TrimRight(flagURL, "/"), nil
	}

	if cfg.API.URLFromEnv {
		return cfg.API.URL, nil
	}

	selected, err := userconfig.GetAPIURL()
	if err != nil {
		return "", fmt.Errorf("failed to load user config: %w", err)
	}
	if selected != "" {
		return strings.TrimRight(selected, "/"), nil
	}

	return config.DefaultAPIURL, nil
}

// IsInteractive reports whether stdin is a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SelectOption shows an interactive list and returns the chosen option
func SelectOption(label string, options []view.Option) (view.Option, error) {
	if len(options) == 0 {
		return view.Option{}, fmt.Errorf("nothing to choose from")
	}
	if !IsInteractive() {
		return view.Option{}, ErrNotInteractive
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	sel := promptui.Select{
		Label:     label,
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := sel.Run()
	if err != nil {
		return view.Option{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return options[index], nil
}

// Confirm asks a yes/no question. Anything but yes, including Ctrl-C, is no.
func Confirm(label string) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}

	confirm := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Text asks for a line of input
func Text(label string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}

	p := promptui.Prompt{Label: label}
	value, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// Password reads a password without echoing it
func Password(label string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
