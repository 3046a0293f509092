package editor_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gitfarm/pkg/editor"
	"github.com/arthur-debert/gitfarm/pkg/errors"
)

// fakeEditorScript builds a shell script that rewrites the message file it
// is handed, standing in for an interactive editor.
func fakeEditorScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-editor")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestEditMessageReturnsEditedText(t *testing.T) {
	script := fakeEditorScript(t, `printf 'feat: add widget\n\ndetails here\n' > "$1"`)

	msg, ok, err := editor.New(script).EditMessage(context.Background(), "gitfarm: update widget")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "feat: add widget\n\ndetails here", msg)
}

func TestEditMessageSeedsTheFile(t *testing.T) {
	tmp := t.TempDir()
	captured := filepath.Join(tmp, "captured")
	script := fakeEditorScript(t, fmt.Sprintf(`cp "$1" %q`, captured))

	msg, ok, err := editor.New(script).EditMessage(context.Background(), "gitfarm: update dotfiles")
	require.NoError(t, err)

	// The untouched seed survives the edit
	require.True(t, ok)
	assert.Equal(t, "gitfarm: update dotfiles", msg)

	data, err := os.ReadFile(captured)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gitfarm: update dotfiles")
	assert.Contains(t, string(data), "# Please enter the commit message")
}

func TestEditMessageEmptyFileIsCancellation(t *testing.T) {
	script := fakeEditorScript(t, `: > "$1"`)

	msg, ok, err := editor.New(script).EditMessage(context.Background(), "seed")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestEditMessageCommentOnlyIsCancellation(t *testing.T) {
	script := fakeEditorScript(t, `printf '# nothing to say\n  # indented comment\n\n' > "$1"`)

	_, ok, err := editor.New(script).EditMessage(context.Background(), "seed")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditMessageStripsCommentLines(t *testing.T) {
	script := fakeEditorScript(t, `printf 'real message\n# a comment\ntrailing line\n' > "$1"`)

	msg, ok, err := editor.New(script).EditMessage(context.Background(), "seed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "real message\ntrailing line", msg)
}

func TestEditMessageEditorFailure(t *testing.T) {
	script := fakeEditorScript(t, `exit 1`)

	_, _, err := editor.New(script).EditMessage(context.Background(), "seed")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEditorStart))
}

func TestEditMessageResolvesEnvironment(t *testing.T) {
	script := fakeEditorScript(t, `printf 'from env\n' > "$1"`)

	t.Setenv("VISUAL", script)
	t.Setenv("EDITOR", "/nonexistent")

	msg, ok, err := editor.New("").EditMessage(context.Background(), "seed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "from env", msg)
}

func TestEditMessageCommandMayCarryArguments(t *testing.T) {
	script := fakeEditorScript(t, `
if [ "$1" != "--wait" ]; then
	exit 2
fi
printf 'args ok\n' > "$2"`)

	msg, ok, err := editor.New(script+" --wait").EditMessage(context.Background(), "seed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "args ok", msg)
}
