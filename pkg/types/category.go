package types

// Category is a named group of repository references plus category-scoped
// links; the unit of selection for operations. It holds non-owning
// references (keys) into the Store, never the entries themselves.
type Category struct {
	// Name is the unique key of the category
	Name string

	// Flags is the category-level flag set. Independent of member flags;
	// today it only selects the default commit-message strategy.
	Flags FlagSet

	// RepoKeys references Store entries, in declaration order. Duplicates
	// across categories are expected and never duplicate storage.
	RepoKeys []string

	// Links are the category-scoped symlink definitions
	Links []Link
}
