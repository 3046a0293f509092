// Package display renders per-item progress and the end-of-run summary.
// Progress is cosmetic and honors quiet mode; the failure/skip summary is
// part of the contract and is printed regardless of quiet.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Options configures a Printer
type Options struct {
	// Quiet suppresses per-item progress, not summaries
	Quiet bool

	// Emoji toggles pictographic status markers
	Emoji bool

	// Out defaults to stdout
	Out io.Writer
}

// Printer implements the dispatcher's Reporter and renders run summaries
type Printer struct {
	quiet   bool
	emoji   bool
	color   bool
	out     io.Writer
	spinner *pterm.SpinnerPrinter

	failStyle lipgloss.Style
	skipStyle lipgloss.Style
	headStyle lipgloss.Style
}

// NewPrinter creates a Printer, downgrading to plain output when stdout is
// not a terminal or the user set NO_COLOR.
func NewPrinter(opts Options) *Printer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	if termenv.EnvNoColor() {
		color = false
	}
	if !color {
		pterm.DisableColor()
	}

	p := &Printer{
		quiet: opts.Quiet,
		emoji: opts.Emoji,
		color: color,
		out:   out,
	}
	if color {
		p.failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		p.skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
		p.headStyle = lipgloss.NewStyle().Bold(true)
	}
	return p
}

// Start begins per-item progress
func (p *Printer) Start(category, item string, op types.Operation) {
	if p.quiet {
		return
	}
	text := fmt.Sprintf("%s/%s: %s", category, item, op)
	if p.color {
		p.spinner, _ = pterm.DefaultSpinner.WithWriter(p.out).Start(text)
		return
	}
	// No spinner without a terminal; the Done line is enough
}

// Done finishes per-item progress with the outcome's marker
func (p *Printer) Done(o types.Outcome) {
	if p.quiet {
		return
	}
	line := fmt.Sprintf("%s %s/%s: %s", p.marker(o.Status), o.Category, o.Item, o.Operation)
	if o.Status == types.StatusSkipped && o.Reason != "" {
		line += fmt.Sprintf(" (%s)", o.Reason)
	}
	if p.spinner != nil {
		switch o.Status {
		case types.StatusSuccess:
			p.spinner.Success(line)
		case types.StatusSkipped:
			p.spinner.Warning(line)
		default:
			p.spinner.Fail(line)
		}
		p.spinner = nil
		return
	}
	fmt.Fprintln(p.out, line)
}

// Summary prints the aggregated result: every failed and skipped item with
// its cause, then the counts. Printed even in quiet mode.
func (p *Printer) Summary(result *types.RunResult) {
	failed := result.Failed()
	skipped := result.Skipped()

	if len(failed) > 0 {
		fmt.Fprintln(p.out, p.headStyle.Render("Failed:"))
		for _, o := range failed {
			fmt.Fprintln(p.out, p.failStyle.Render(
				fmt.Sprintf("  %s %s/%s: %s: %v", p.marker(o.Status), o.Category, o.Item, o.Operation, o.Err)))
		}
	}
	if len(skipped) > 0 && !p.quiet {
		fmt.Fprintln(p.out, p.headStyle.Render("Skipped:"))
		for _, o := range skipped {
			fmt.Fprintln(p.out, p.skipStyle.Render(
				fmt.Sprintf("  %s %s/%s: %s (%s)", p.marker(o.Status), o.Category, o.Item, o.Operation, o.Reason)))
		}
	}

	fmt.Fprintf(p.out, "%d succeeded, %d skipped, %d failed\n",
		len(result.Succeeded()), len(skipped), len(failed))
}

func (p *Printer) marker(status types.Status) string {
	if p.emoji {
		switch status {
		case types.StatusSuccess:
			return "✔"
		case types.StatusSkipped:
			return "➖"
		default:
			return "❎"
		}
	}
	switch status {
	case types.StatusSuccess:
		return "[ ok ]"
	case types.StatusSkipped:
		return "[skip]"
	default:
		return "[FAIL]"
	}
}
