package commands

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

func TestWithLoading_HiddenWhileDebugLogging(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var logs bytes.Buffer
	app := NewApp("test")
	app.Err = &logs

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	app.Log = zerolog.New(&logs)

	var visible bool
	app.withLoading(func() { visible = view.LoadingVisible() })
	if visible {
		t.Error("expected no loading indicator while debug logs are written")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	app.withLoading(func() { visible = view.LoadingVisible() })
	if !visible {
		t.Error("expected the loading indicator without debug logs")
	}
	if view.LoadingVisible() {
		t.Error("expected the indicator to be removed afterwards")
	}
}
