package types

import (
	"github.com/arthur-debert/gitfarm/pkg/errors"
)

// Flag is a capability marker on a repo entry or a category. On entries it
// gates which operations apply; on categories it only selects the default
// commit-message strategy (quick/fast), never per-operation eligibility.
type Flag string

const (
	FlagClone Flag = "clone"
	FlagPull  Flag = "pull"
	FlagPush  Flag = "push"

	// FlagFast derives the commit message from context, no prompt.
	FlagFast Flag = "fast"
	// FlagQuick commits with the fixed default message.
	FlagQuick Flag = "quick"
)

// knownFlags lists every valid flag. New flags must be added here and to
// ParseFlag's accepted set.
var knownFlags = []Flag{FlagClone, FlagPull, FlagPush, FlagFast, FlagQuick}

// ParseFlag validates a raw config string into a Flag
func ParseFlag(s string) (Flag, error) {
	for _, f := range knownFlags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigValid, "unknown flag %q", s).
		WithDetail("flag", s)
}

// FlagSet is the set of flags enabled on an entry or category
type FlagSet []Flag

// Has reports whether the set contains the given flag
func (s FlagSet) Has(f Flag) bool {
	for _, have := range s {
		if have == f {
			return true
		}
	}
	return false
}

// Empty reports whether no flags are declared at all. An empty set means
// "eligible for everything" - the common case for a freshly declared repo.
func (s FlagSet) Empty() bool {
	return len(s) == 0
}

// Strings returns the set as raw strings, for serialization and logging
func (s FlagSet) Strings() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}

// ParseFlags validates a list of raw config strings into a FlagSet
func ParseFlags(raw []string) (FlagSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	set := make(FlagSet, 0, len(raw))
	for _, s := range raw {
		f, err := ParseFlag(s)
		if err != nil {
			return nil, err
		}
		set = append(set, f)
	}
	return set, nil
}
