// Package editor implements the interactive commit-message collaborator: a
// terminal editor launched on a seed file, the way git itself prompts for a
// message. The call is synchronous and returns either a message or a
// cancellation; it is fully substitutable behind types.Editor for testing.
package editor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/logging"
)

const commentHint = `
# Please enter the commit message. Lines starting with '#' are ignored,
# and an empty message aborts the commit for this repository only.
`

// Terminal launches a terminal editor on a temp file and reads the result
// back. An empty or comment-only message is a cancellation, not an error.
type Terminal struct {
	// Command overrides VISUAL/EDITOR when set; it may carry arguments
	Command string

	logger zerolog.Logger
}

// New creates a Terminal editor. command may be empty, in which case
// VISUAL, then EDITOR, then vi decide.
func New(command string) *Terminal {
	return &Terminal{
		Command: command,
		logger:  logging.GetLogger("editor"),
	}
}

// EditMessage implements types.Editor
func (t *Terminal) EditMessage(ctx context.Context, seed string) (string, bool, error) {
	dir, err := os.MkdirTemp("", "gitfarm-commit-*")
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrEditorStart, "cannot create message file")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "COMMIT_EDITMSG")
	if err := os.WriteFile(path, []byte(seed+commentHint), 0644); err != nil {
		return "", false, errors.Wrap(err, errors.ErrEditorStart, "cannot write message file")
	}

	command := t.resolveCommand()
	parts := strings.Fields(command)
	args := append(parts[1:], path)

	t.logger.Debug().Str("editor", command).Msg("Launching editor")

	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrEditorStart,
			"editor %s failed", parts[0]).WithDetail("editor", command)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrEditorStart, "cannot read message back")
	}

	message := stripComments(string(edited))
	if message == "" {
		// The user left the message empty: cancellation, not failure
		return "", false, nil
	}
	return message, true, nil
}

func (t *Terminal) resolveCommand() string {
	if t.Command != "" {
		return t.Command
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}

// stripComments drops comment lines and surrounding whitespace
func stripComments(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
