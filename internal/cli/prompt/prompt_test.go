package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentacar-dev/rentacar/internal/cli/userconfig"
	"github.com/rentacar-dev/rentacar/internal/config"
)

func TestResolveAPIURL(t *testing.T) {
	t.Setenv("RENTACAR_STATE_DIR", t.TempDir())

	fromEnv := &config.Config{API: config.APIConfig{URL: "http://env.example.com/api", URLFromEnv: true}}
	defaults := &config.Config{API: config.APIConfig{URL: config.DefaultAPIURL}}

	url, err := ResolveAPIURL("", defaults)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, url)

	require.NoError(t, userconfig.SetAPIURL("http://saved.example.com/api/"))

	url, err = ResolveAPIURL("", defaults)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.example.com/api", url)

	url, err = ResolveAPIURL("", fromEnv)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com/api", url)

	url, err = ResolveAPIURL("http://flag.example.com/api/", fromEnv)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example.com/api", url)
}

func TestResolveAPIURL_BadUserConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RENTACAR_STATE_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("not json"), 0600))

	_, err := ResolveAPIURL("", &config.Config{})
	assert.ErrorContains(t, err, "failed to load user config")
}
