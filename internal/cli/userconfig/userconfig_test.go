package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIURL(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RENTACAR_STATE_DIR", dir)

	url, err := GetAPIURL()
	require.NoError(t, err)
	assert.Empty(t, url, "missing file means nothing selected")

	require.NoError(t, SetAPIURL("https://rent.example.com/api"))

	url, err = GetAPIURL()
	require.NoError(t, err)
	assert.Equal(t, "https://rent.example.com/api", url)

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RENTACAR_STATE_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0600))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse user config file")
}
