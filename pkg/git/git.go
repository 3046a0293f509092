// Package git drives the external git client, one subprocess per operation.
// The client is a black box: gitfarm only ever looks at the exit status and
// the combined output, never at repository internals. A missing or broken
// git binary surfaces as a per-item failure the first time it is needed.
package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/logging"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Git invokes the git client for repo entries. Clone runs in the entry's
// parent path and creates the working tree; every other operation runs
// inside the working tree itself.
type Git struct {
	binary string
	logger zerolog.Logger
}

// New creates a Git executor using the `git` binary from PATH
func New() *Git {
	return &Git{
		binary: "git",
		logger: logging.GetLogger("git"),
	}
}

// Clone clones the entry's URL into path/name
func (g *Git) Clone(ctx context.Context, entry types.RepoEntry) error {
	out, err := g.run(ctx, entry.Path, "clone", entry.URL, entry.Name)
	return g.wrap(err, errors.ErrGitClone, entry, out)
}

// Pull runs git pull in the working tree
func (g *Git) Pull(ctx context.Context, entry types.RepoEntry) error {
	out, err := g.run(ctx, entry.Dir(), "pull")
	return g.wrap(err, errors.ErrGitPull, entry, out)
}

// Add stages all changes in the working tree
func (g *Git) Add(ctx context.Context, entry types.RepoEntry) error {
	out, err := g.run(ctx, entry.Dir(), "add", ".")
	return g.wrap(err, errors.ErrGitAdd, entry, out)
}

// Commit commits staged changes with the given message
func (g *Git) Commit(ctx context.Context, entry types.RepoEntry, message string) error {
	out, err := g.run(ctx, entry.Dir(), "commit", "-m", message)
	return g.wrap(err, errors.ErrGitCommit, entry, out)
}

// Push pushes the working tree's current branch
func (g *Git) Push(ctx context.Context, entry types.RepoEntry) error {
	out, err := g.run(ctx, entry.Dir(), "push")
	return g.wrap(err, errors.ErrGitPush, entry, out)
}

func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	logging.LogCommand(g.binary, args)

	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	g.logger.Debug().
		Str("dir", dir).
		Strs("args", args).
		Bool("ok", err == nil).
		Msg("git invocation finished")

	return string(out), err
}

// wrap turns a subprocess failure into a structured per-item error carrying
// the exit status and a diagnostic excerpt of the output.
func (g *Git) wrap(err error, code errors.ErrorCode, entry types.RepoEntry, out string) error {
	if err == nil {
		return nil
	}
	gfErr := errors.Wrapf(err, code, "git %s failed for %s", opName(code), entry.Name).
		WithDetail("repo", entry.Name).
		WithDetail("dir", entry.Dir())
	if exitErr, ok := err.(*exec.ExitError); ok {
		gfErr = gfErr.WithDetail("exit_code", exitErr.ExitCode())
	}
	if diag := strings.TrimSpace(out); diag != "" {
		gfErr = gfErr.WithDetail("output", tail(diag, 500))
	}
	return gfErr
}

func opName(code errors.ErrorCode) string {
	switch code {
	case errors.ErrGitClone:
		return "clone"
	case errors.ErrGitPull:
		return "pull"
	case errors.ErrGitAdd:
		return "add"
	case errors.ErrGitCommit:
		return "commit"
	case errors.ErrGitPush:
		return "push"
	}
	return "operation"
}

// tail keeps the last n bytes of diagnostic output, where the useful part
// of a git error usually is.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
