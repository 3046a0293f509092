package types

// Operation is one of the repeatable actions gitfarm applies across a
// selection of categories. The set is closed but designed to grow: adding a
// variant means extending Flag(), IsLinkOp and the command wiring.
type Operation string

const (
	OpClone  Operation = "clone"
	OpPull   Operation = "pull"
	OpAdd    Operation = "add"
	OpCommit Operation = "commit"
	OpPush   Operation = "push"

	// OpQuick is the composite pull/add/commit/push sweep
	OpQuick Operation = "quick"

	OpCreateLinks Operation = "link"
	OpRemoveLinks Operation = "unlink"
)

// Flag returns the entry flag that gates this operation, if any. Add, commit
// and push are all gated by the push flag: an entry that may be pushed may
// also be staged and committed.
func (op Operation) Flag() (Flag, bool) {
	switch op {
	case OpClone:
		return FlagClone, true
	case OpPull:
		return FlagPull, true
	case OpAdd, OpCommit, OpPush:
		return FlagPush, true
	}
	return "", false
}

// IsLinkOp reports whether the operation iterates links instead of repos
func (op Operation) IsLinkOp() bool {
	return op == OpCreateLinks || op == OpRemoveLinks
}

func (op Operation) String() string {
	return string(op)
}

// QuickSteps is the fixed order of per-repo sub-operations performed by
// OpQuick. Every step is attempted for every repo, matching the original
// behavior: a failed pull does not suppress the commit or push attempt.
var QuickSteps = []Operation{OpPull, OpAdd, OpCommit, OpPush}
