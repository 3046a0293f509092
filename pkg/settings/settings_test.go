package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/settings"
	"github.com/arthur-debert/gitfarm/pkg/testutil"
)

func TestLoadDefaults(t *testing.T) {
	s, err := settings.Load("")
	require.NoError(t, err)

	assert.False(t, s.Quiet)
	assert.True(t, s.Emoji)
	assert.Equal(t, "gitfarm: quick commit", s.DefaultMessage)
	assert.Empty(t, s.Editor)
}

func TestLoadMissingUserFileFallsBackToDefaults(t *testing.T) {
	s, err := settings.Load("/nonexistent/gitfarm.toml")
	require.NoError(t, err)
	assert.Equal(t, "gitfarm: quick commit", s.DefaultMessage)
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "gitfarm.toml", `
quiet = true
default_message = "wip"
editor = "nano"
`)

	s, err := settings.Load(path)
	require.NoError(t, err)

	assert.True(t, s.Quiet)
	assert.Equal(t, "wip", s.DefaultMessage)
	assert.Equal(t, "nano", s.Editor)

	// Keys the user did not set keep their defaults
	assert.True(t, s.Emoji)
}

func TestLoadEnvOverridesUserFile(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "gitfarm.toml", `default_message = "from file"`)

	t.Setenv("GITFARM_DEFAULT_MESSAGE", "from env")
	t.Setenv("GITFARM_EMOJI", "false")

	s, err := settings.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from env", s.DefaultMessage)
	assert.False(t, s.Emoji)
}

func TestLoadMalformedUserFile(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "gitfarm.toml", `quiet = [broken`)

	_, err := settings.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
