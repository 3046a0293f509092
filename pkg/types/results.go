package types

import (
	"time"
)

// Status classifies the outcome of one (category, item) pair
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome records the result of one operation on one repo or link
type Outcome struct {
	// Category the item was selected through; "global" for global links
	Category string

	// Item identifies the repo name or link description
	Item string

	// Operation that was attempted (for composite runs, the sub-step)
	Operation Operation

	Status Status

	// Reason explains a skip
	Reason string

	// Err carries the cause of a failure
	Err error

	Duration time.Duration
}

// RunResult aggregates per-item outcomes for one dispatcher invocation.
// It is append-only during a run.
type RunResult struct {
	Outcomes []Outcome
}

// Record appends an outcome
func (r *RunResult) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Failed returns every failed outcome
func (r *RunResult) Failed() []Outcome {
	return r.filter(StatusFailed)
}

// Skipped returns every skipped outcome
func (r *RunResult) Skipped() []Outcome {
	return r.filter(StatusSkipped)
}

// Succeeded returns every successful outcome
func (r *RunResult) Succeeded() []Outcome {
	return r.filter(StatusSuccess)
}

// HasFailures reports whether any item failed. The caller derives the
// process exit code from this, never from the count.
func (r *RunResult) HasFailures() bool {
	return len(r.Failed()) > 0
}

func (r *RunResult) filter(status Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
