package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/authstate"
	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/credentials"
	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/prompt"
	"github.com/rentacar-dev/rentacar/internal/cli/session"
	"github.com/rentacar-dev/rentacar/internal/cli/storage"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
	"github.com/rentacar-dev/rentacar/internal/config"
	"github.com/rentacar-dev/rentacar/internal/logger"
)

// ErrAlertShown is returned after an error alert was already printed, so the
// caller only needs to set the exit status
var ErrAlertShown = errors.New("command failed")

// SkipLoadAnnotation marks commands that run without loading the session
const SkipLoadAnnotation = "rentacar/skip-load"

// Options are the global flags
type Options struct {
	APIURL   string
	LogLevel string
	Nav      bool
}

// App is the wired client every page command works with. Load runs once per
// invocation and plays the part of a page load: it resolves who is logged in
// before the command itself runs.
type App struct {
	Version string
	Options Options

	Out io.Writer
	Err io.Writer

	Config   *config.Config
	Log      zerolog.Logger
	Client   *client.Client
	Store    *session.Store
	Session  *authstate.Session
	Pages    *pages.Pages
	Renderer *view.Renderer

	storage storage.Storage
	cookies credentials.CookieStore
	loaded  bool
}

// NewApp creates an unloaded app writing to stdout and stderr
func NewApp(version string) *App {
	return &App{
		Version: version,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Log:     zerolog.Nop(),
	}
}

// Load reads configuration, wires the client and resolves the auth state
func (a *App) Load(ctx context.Context) error {
	if a.loaded {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if a.Options.LogLevel != "" {
		level = a.Options.LogLevel
	}
	logger.InitCLI(level, cfg.Logging.Format, a.Err)
	a.Log = logger.GetLogger()

	apiURL, err := prompt.ResolveAPIURL(a.Options.APIURL, cfg)
	if err != nil {
		return err
	}

	return a.wire(ctx, cfg, apiURL)
}

func (a *App) wire(ctx context.Context, cfg *config.Config, apiURL string) error {
	st := a.storage
	if st == nil {
		st = storage.NewFile(cfg.State.Dir)
	}
	cookies := a.cookies
	if cookies == nil {
		cookies = credentials.Default
	}

	apiClient, err := client.New(apiURL,
		client.WithLogger(a.Log),
		client.WithTimeout(cfg.API.Timeout),
		client.WithUserAgent("rentacar-cli/"+a.Version),
		client.WithCookieStore(cookies),
	)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Client = apiClient
	a.Store = session.NewStore(st, a.Log)
	a.Session = authstate.NewSession(authstate.NewResolver(apiClient, a.Store, a.Log), a.Store)
	a.Pages = pages.New(apiClient, a.Session, a.Log)
	a.Renderer = view.NewRenderer(a.Out)

	a.withLoading(func() {
		a.Session.Init(ctx)
	})

	a.Log.Debug().Str("api_url", apiURL).Bool("logged_in", a.Store.IsLoggedIn()).Msg("Session loaded")

	if a.Options.Nav {
		a.Renderer.Navigation(authstate.Navigation(a.Store))
	}

	a.loaded = true
	return nil
}

// show renders an alert and turns error alerts into ErrAlertShown
func (a *App) show(alert *view.Alert) error {
	a.Renderer.Alert(alert)
	if alert.IsError() {
		return ErrAlertShown
	}
	return nil
}

// withLoading runs fn while the loading indicator is up. Debug logs share
// stderr with the indicator, so it stays hidden when they are on.
func (a *App) withLoading(fn func()) {
	if logger.DebugEnabled(a.Log) {
		fn()
		return
	}
	view.ShowLoading(a.Err)
	defer view.HideLoading()
	fn()
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}
