package types

// Link declares a symlink to materialize: Target becomes a symlink pointing
// at Source. Identity is the (Source, Target) pair; Name is informational
// and need not be unique. Links never reference the Store.
type Link struct {
	// Name is an optional informational label
	Name string

	// Source is the file that physically exists (the original's "tx"),
	// typically inside a managed repository
	Source string

	// Target is where the symlink should exist (the original's "rx"),
	// typically inside the user's home directory
	Target string
}

// Describe returns a short identification used in progress and summaries
func (l Link) Describe() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Source + " -> " + l.Target
}
