package types

import (
	"path/filepath"
)

// RepoKind discriminates entry kinds. Only git repositories exist today, but
// the tag is open so non-git kinds can be added without a schema change.
type RepoKind string

const (
	// KindGit is a repository managed by the git client
	KindGit RepoKind = "git"
)

// RepoEntry is a single repository definition. Identity is the Name; entries
// live in the Store and are shared by reference across every category that
// lists their name.
type RepoEntry struct {
	// Name is the unique key of the entry within the Store
	Name string

	// Path is the local parent directory holding the repo. Optional: an
	// entry without a path is not yet resolvable for pull/commit/push.
	Path string

	// URL is the remote locator. Optional: required only for clone.
	URL string

	// Kind discriminates the entry kind, defaulting to a git repository
	Kind RepoKind

	// Flags gates which operations apply to this entry. An empty set
	// means the entry is eligible for every operation.
	Flags FlagSet
}

// Dir returns the working tree location: the parent path joined with the
// repo name. Clone runs in Path and creates Dir; everything else runs in Dir.
func (e RepoEntry) Dir() string {
	return filepath.Join(e.Path, e.Name)
}

// Eligible implements the flag policy: an operation applies to an entry if
// the entry declares no flags at all, if the operation is not flag-gated, or
// if the entry's flags contain the operation's gate.
func (e RepoEntry) Eligible(op Operation) bool {
	if e.Flags.Empty() {
		return true
	}
	flag, gated := op.Flag()
	if !gated {
		return true
	}
	return e.Flags.Has(flag)
}

// Resolvable reports whether the entry carries the fields the operation
// needs, and a human-readable reason when it does not. Absent path/url is
// not a configuration defect - the entry is just not yet resolvable.
func (e RepoEntry) Resolvable(op Operation) (bool, string) {
	switch op {
	case OpClone:
		if e.URL == "" {
			return false, "no url configured"
		}
		if e.Path == "" {
			return false, "no path configured"
		}
	case OpPull, OpAdd, OpCommit, OpPush:
		if e.Path == "" {
			return false, "no path configured"
		}
	}
	return true, ""
}
