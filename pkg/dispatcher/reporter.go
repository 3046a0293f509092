package dispatcher

import (
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Reporter receives per-item progress from the dispatcher. The dispatch loop
// is sequential, so Start and Done always alternate for one item at a time.
type Reporter interface {
	Start(category, item string, op types.Operation)
	Done(outcome types.Outcome)
}

type nopReporter struct{}

func (nopReporter) Start(string, string, types.Operation) {}
func (nopReporter) Done(types.Outcome)                    {}
