package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/gitfarm/pkg/types"
)

// MessageStrategy produces the commit message for one repo in one category.
// The three modes are mutually exclusive per invocation: Quick needs no I/O,
// Fast derives a message deterministically from context, and Edit suspends
// the operation on the interactive editor collaborator. ok=false means the
// message was cancelled for that repo.
type MessageStrategy interface {
	Message(ctx context.Context, category types.Category, entry types.RepoEntry) (message string, ok bool, err error)
	Name() string
}

// QuickMessage always commits with the same fixed message
type QuickMessage struct {
	Text string
}

func (q QuickMessage) Message(context.Context, types.Category, types.RepoEntry) (string, bool, error) {
	return q.Text, true, nil
}

func (q QuickMessage) Name() string { return "quick" }

// StaticMessage commits with a message the user passed on the command line
type StaticMessage struct {
	Text string
}

func (s StaticMessage) Message(context.Context, types.Category, types.RepoEntry) (string, bool, error) {
	return s.Text, true, nil
}

func (s StaticMessage) Name() string { return "static" }

// FastMessage derives the message from the category name and the current
// time, with no interactive step.
type FastMessage struct {
	// Now is swappable for deterministic tests; defaults to time.Now
	Now func() time.Time
}

func (f FastMessage) Message(_ context.Context, category types.Category, _ types.RepoEntry) (string, bool, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return fmt.Sprintf("gitfarm: update %s @ %s",
		category.Name, now().UTC().Format(time.RFC3339)), true, nil
}

func (f FastMessage) Name() string { return "fast" }

// EditMessage delegates to the interactive editor collaborator. A cancelled
// edit skips the repo; it never fails the run or stops the remaining repos.
type EditMessage struct {
	Editor types.Editor
}

func (e EditMessage) Message(ctx context.Context, category types.Category, entry types.RepoEntry) (string, bool, error) {
	seed := fmt.Sprintf("gitfarm: update %s", entry.Name)
	return e.Editor.EditMessage(ctx, seed)
}

func (e EditMessage) Name() string { return "edit" }

// strategyFor resolves the effective strategy: an explicit per-invocation
// choice wins; otherwise the category's quick/fast flags pick a
// non-interactive default, and Edit is the fallback.
func (d *Dispatcher) strategyFor(category types.Category) MessageStrategy {
	if d.strategy != nil {
		return d.strategy
	}
	switch {
	case category.Flags.Has(types.FlagQuick):
		return QuickMessage{Text: d.defaultMessage}
	case category.Flags.Has(types.FlagFast):
		return FastMessage{}
	}
	return EditMessage{Editor: d.editor}
}
