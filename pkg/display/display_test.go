package display_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/gitfarm/pkg/display"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

func sampleResult() *types.RunResult {
	r := &types.RunResult{}
	r.Record(types.Outcome{Category: "dev", Item: "a", Operation: types.OpPush, Status: types.StatusSuccess})
	r.Record(types.Outcome{Category: "dev", Item: "b", Operation: types.OpPush, Status: types.StatusSkipped, Reason: "not flagged for push"})
	r.Record(types.Outcome{Category: "dev", Item: "c", Operation: types.OpPush, Status: types.StatusFailed, Err: fmt.Errorf("remote rejected")})
	return r
}

func TestDoneRendersMarkers(t *testing.T) {
	tests := []struct {
		name   string
		emoji  bool
		status types.Status
		want   string
	}{
		{"emoji success", true, types.StatusSuccess, "✔"},
		{"emoji skip", true, types.StatusSkipped, "➖"},
		{"emoji fail", true, types.StatusFailed, "❎"},
		{"plain success", false, types.StatusSuccess, "[ ok ]"},
		{"plain skip", false, types.StatusSkipped, "[skip]"},
		{"plain fail", false, types.StatusFailed, "[FAIL]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := display.NewPrinter(display.Options{Emoji: tt.emoji, Out: &buf})

			p.Done(types.Outcome{Category: "dev", Item: "a", Operation: types.OpPull, Status: tt.status})
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "dev/a: pull")
		})
	}
}

func TestDoneIncludesSkipReason(t *testing.T) {
	var buf bytes.Buffer
	p := display.NewPrinter(display.Options{Out: &buf})

	p.Done(types.Outcome{
		Category: "dev", Item: "a", Operation: types.OpClone,
		Status: types.StatusSkipped, Reason: "no url configured",
	})
	assert.Contains(t, buf.String(), "(no url configured)")
}

func TestQuietSuppressesProgressNotSummary(t *testing.T) {
	var buf bytes.Buffer
	p := display.NewPrinter(display.Options{Quiet: true, Out: &buf})

	p.Start("dev", "a", types.OpPush)
	p.Done(types.Outcome{Category: "dev", Item: "a", Operation: types.OpPush, Status: types.StatusSuccess})
	assert.Empty(t, buf.String())

	p.Summary(sampleResult())
	out := buf.String()
	assert.Contains(t, out, "Failed:")
	assert.Contains(t, out, "remote rejected")
	assert.Contains(t, out, "1 succeeded, 1 skipped, 1 failed")

	// Quiet drops the skipped section but never the counts
	assert.NotContains(t, out, "Skipped:")
}

func TestSummaryListsFailuresAndSkips(t *testing.T) {
	var buf bytes.Buffer
	p := display.NewPrinter(display.Options{Out: &buf})

	p.Summary(sampleResult())
	out := buf.String()

	assert.Contains(t, out, "Failed:")
	assert.Contains(t, out, "dev/c: push: remote rejected")
	assert.Contains(t, out, "Skipped:")
	assert.Contains(t, out, "dev/b: push (not flagged for push)")
	assert.Contains(t, out, "1 succeeded, 1 skipped, 1 failed")
}

func TestSummaryAllClean(t *testing.T) {
	var buf bytes.Buffer
	p := display.NewPrinter(display.Options{Out: &buf})

	r := &types.RunResult{}
	r.Record(types.Outcome{Category: "dev", Item: "a", Operation: types.OpPull, Status: types.StatusSuccess})
	p.Summary(r)

	out := buf.String()
	assert.NotContains(t, out, "Failed:")
	assert.NotContains(t, out, "Skipped:")
	assert.Contains(t, out, "1 succeeded, 0 skipped, 0 failed")
}
