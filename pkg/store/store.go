// Package store holds the deduplicated registry of repository entries and
// resolves category key references against it. The store is the single
// source of truth for repository identity: categories hold keys, never
// entries, so a repo declared in five categories is stored exactly once.
package store

import (
	"sort"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Store maps unique entry names to their definitions. Lookup by key is the
// only access path; insertion order is irrelevant.
type Store struct {
	entries map[string]types.RepoEntry
}

// New creates an empty store
func New() *Store {
	return &Store{entries: make(map[string]types.RepoEntry)}
}

// Insert adds or replaces an entry by its name, last write wins. Load uses
// this to merge category-declared inline entries into the canonical store.
func (s *Store) Insert(entry types.RepoEntry) {
	s.entries[entry.Name] = entry
}

// Get looks up an entry by name
func (s *Store) Get(name string) (types.RepoEntry, bool) {
	entry, ok := s.entries[name]
	return entry, ok
}

// All returns every entry, sorted by name so whole-store sweeps are
// deterministic.
func (s *Store) All() []types.RepoEntry {
	out := make([]types.RepoEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Resolve turns a category's key references into concrete entries, in the
// order the category declares them. A key with no store entry is a dangling
// reference: a configuration defect, raised before any operation runs.
func (s *Store) Resolve(category types.Category) ([]types.RepoEntry, error) {
	entries := make([]types.RepoEntry, 0, len(category.RepoKeys))
	for _, key := range category.RepoKeys {
		entry, ok := s.entries[key]
		if !ok {
			return nil, errors.Newf(errors.ErrDanglingRef,
				"category %q references unknown repo %q", category.Name, key).
				WithDetail("category", category.Name).
				WithDetail("key", key)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
