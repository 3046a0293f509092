// Package dispatcher is gitfarm's execution engine. Given an operation and a
// selection of categories it resolves entries against the store, applies the
// flag policy, and drives side effects through the executor collaborator,
// aggregating one outcome per item. Its central contract is best-effort
// dispatch: one item's failure never prevents the remaining items from being
// attempted. Only configuration defects abort a run, and those are raised
// before the first side effect.
package dispatcher

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitfarm/pkg/config"
	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/logging"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// DefaultCommitMessage is used by the Quick strategy when settings do not
// override it.
const DefaultCommitMessage = "gitfarm: quick commit"

// Options configures a Dispatcher
type Options struct {
	Config   *config.Config
	Executor types.Executor

	// Editor backs the Edit commit strategy; required only when commits
	// may fall back to interactive editing.
	Editor types.Editor

	// Reporter receives per-item progress; nil disables progress output
	Reporter Reporter

	// Strategy forces a commit-message strategy for the whole invocation.
	// When nil, category flags decide and Edit is the fallback.
	Strategy MessageStrategy

	// DefaultMessage overrides the Quick strategy text
	DefaultMessage string

	// DryRun records what would run without invoking the executor
	DryRun bool

	// Logger overrides the component logger when set
	Logger *zerolog.Logger
}

// Dispatcher applies operations across resolved categories
type Dispatcher struct {
	cfg            *config.Config
	exec           types.Executor
	editor         types.Editor
	reporter       Reporter
	strategy       MessageStrategy
	defaultMessage string
	dryRun         bool
	logger         zerolog.Logger
}

// New creates a dispatcher
func New(opts Options) *Dispatcher {
	logger := logging.GetLogger("dispatcher")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	message := opts.DefaultMessage
	if message == "" {
		message = DefaultCommitMessage
	}
	return &Dispatcher{
		cfg:            opts.Config,
		exec:           opts.Executor,
		editor:         opts.Editor,
		reporter:       reporter,
		strategy:       opts.Strategy,
		defaultMessage: message,
		dryRun:         opts.DryRun,
		logger:         logger,
	}
}

// Run applies the operation to every item the selection covers and returns
// the aggregated result. A configuration defect (unknown category, dangling
// reference) returns a nil result and an error before any side effect; a
// cancelled context returns the partial result together with the context's
// error. Per-item failures live in the result, never in the error.
func (d *Dispatcher) Run(ctx context.Context, op types.Operation, sel types.Selection) (*types.RunResult, error) {
	cats, err := d.selectCategories(sel)
	if err != nil {
		return nil, err
	}

	// Resolve every selected category before the first side effect, so a
	// dangling reference can never leave a run half-executed.
	resolved := make(map[string][]types.RepoEntry, len(cats))
	for _, cat := range cats {
		entries, err := d.cfg.Store.Resolve(cat)
		if err != nil {
			return nil, err
		}
		resolved[cat.Name] = entries
	}

	d.logger.Info().
		Str("operation", op.String()).
		Int("categories", len(cats)).
		Bool("dryRun", d.dryRun).
		Msg("Run started")

	result := &types.RunResult{}
	for _, cat := range cats {
		if op.IsLinkOp() {
			if err := d.runLinks(ctx, op, cat.Name, cat.Links, result); err != nil {
				return result, err
			}
			continue
		}

		for _, entry := range resolved[cat.Name] {
			if !sel.WantsRepo(entry.Name) {
				continue
			}
			steps := []types.Operation{op}
			if op == types.OpQuick {
				steps = types.QuickSteps
			}
			for _, step := range steps {
				// Stop issuing new operations once cancelled; the
				// in-flight one has already finished or failed cleanly.
				if err := ctx.Err(); err != nil {
					return result, err
				}
				result.Record(d.applyRepo(ctx, cat, entry, step))
			}
		}
	}

	// The global link set rides along when every category is selected
	if op.IsLinkOp() && sel.All() {
		if err := d.runLinks(ctx, op, "global", d.cfg.Links, result); err != nil {
			return result, err
		}
	}

	d.logger.Info().
		Str("operation", op.String()).
		Int("succeeded", len(result.Succeeded())).
		Int("skipped", len(result.Skipped())).
		Int("failed", len(result.Failed())).
		Msg("Run finished")
	return result, nil
}

// selectCategories maps the selection to concrete categories, in the
// document's declaration order. Naming an unknown category is a defect.
func (d *Dispatcher) selectCategories(sel types.Selection) ([]types.Category, error) {
	if sel.All() {
		cats := make([]types.Category, 0, len(d.cfg.CategoryNames))
		for _, name := range d.cfg.CategoryNames {
			cats = append(cats, d.cfg.Categories[name])
		}
		return cats, nil
	}
	cats := make([]types.Category, 0, len(sel.Categories))
	for _, name := range sel.Categories {
		cat, ok := d.cfg.Category(name)
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, "unknown category %q", name).
				WithDetail("category", name)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// applyRepo runs one operation against one entry and classifies the result.
// It never returns an error: failures become outcomes.
func (d *Dispatcher) applyRepo(ctx context.Context, cat types.Category, entry types.RepoEntry, op types.Operation) types.Outcome {
	start := time.Now()
	d.reporter.Start(cat.Name, entry.Name, op)

	finish := func(o types.Outcome) types.Outcome {
		o.Duration = time.Since(start)
		d.logOutcome(o)
		d.reporter.Done(o)
		return o
	}
	outcome := types.Outcome{Category: cat.Name, Item: entry.Name, Operation: op}

	if !entry.Eligible(op) {
		outcome.Status = types.StatusSkipped
		outcome.Reason = fmt.Sprintf("not flagged for %s", op)
		return finish(outcome)
	}
	if ok, reason := entry.Resolvable(op); !ok {
		outcome.Status = types.StatusSkipped
		outcome.Reason = reason
		return finish(outcome)
	}
	if d.dryRun {
		outcome.Status = types.StatusSkipped
		outcome.Reason = "dry run - no changes made"
		return finish(outcome)
	}

	var err error
	switch op {
	case types.OpClone:
		err = d.exec.Clone(ctx, entry)
	case types.OpPull:
		err = d.exec.Pull(ctx, entry)
	case types.OpAdd:
		err = d.exec.Add(ctx, entry)
	case types.OpCommit:
		var message string
		var ok bool
		message, ok, err = d.strategyFor(cat).Message(ctx, cat, entry)
		if err == nil && !ok {
			outcome.Status = types.StatusSkipped
			outcome.Reason = "commit message cancelled"
			return finish(outcome)
		}
		if err == nil {
			err = d.exec.Commit(ctx, entry, message)
		}
	case types.OpPush:
		err = d.exec.Push(ctx, entry)
	default:
		err = errors.Newf(errors.ErrInternal, "operation %s cannot run on a repo", op)
	}

	return finish(classify(outcome, err))
}

// runLinks applies a link operation to one scope (a category or the global
// set), continuing past per-link failures.
func (d *Dispatcher) runLinks(ctx context.Context, op types.Operation, scope string, links []types.Link, result *types.RunResult) error {
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Record(d.applyLink(op, scope, link))
	}
	return nil
}

func (d *Dispatcher) applyLink(op types.Operation, scope string, link types.Link) types.Outcome {
	start := time.Now()
	d.reporter.Start(scope, link.Describe(), op)

	outcome := types.Outcome{Category: scope, Item: link.Describe(), Operation: op}

	if d.dryRun {
		outcome.Status = types.StatusSkipped
		outcome.Reason = "dry run - no changes made"
	} else {
		var err error
		switch op {
		case types.OpCreateLinks:
			err = d.exec.CreateLink(link)
		case types.OpRemoveLinks:
			err = d.exec.RemoveLink(link)
		default:
			err = errors.Newf(errors.ErrInternal, "operation %s is not a link operation", op)
		}
		outcome = classify(outcome, err)
	}

	outcome.Duration = time.Since(start)
	d.logOutcome(outcome)
	d.reporter.Done(outcome)
	return outcome
}

// classify folds an executor error into the outcome: nil is success,
// skip-coded errors are skips, anything else is a failure.
func classify(outcome types.Outcome, err error) types.Outcome {
	switch {
	case err == nil:
		outcome.Status = types.StatusSuccess
	case errors.IsSkip(err):
		outcome.Status = types.StatusSkipped
		outcome.Reason = skipReason(err)
	default:
		outcome.Status = types.StatusFailed
		outcome.Err = err
	}
	return outcome
}

// skipReason prefers the structured message over the code-prefixed rendering
func skipReason(err error) string {
	var gfErr *errors.GitfarmError
	if stderrors.As(err, &gfErr) {
		return gfErr.Message
	}
	return err.Error()
}

func (d *Dispatcher) logOutcome(o types.Outcome) {
	event := d.logger.Debug()
	if o.Status == types.StatusFailed {
		event = d.logger.Error().Err(o.Err)
	}
	event.
		Str("category", o.Category).
		Str("item", o.Item).
		Str("operation", o.Operation.String()).
		Str("status", string(o.Status)).
		Dur("duration", o.Duration).
		Msg("Item finished")
}
