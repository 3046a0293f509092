package types

// Selection names the categories an operation runs over, optionally narrowed
// to specific repo names within them. The zero value selects everything,
// including the global link set.
type Selection struct {
	// Categories to run over; empty means all
	Categories []string

	// Repos narrows the run to entries with these names; empty means all
	Repos []string
}

// All reports whether every category is selected
func (s Selection) All() bool {
	return len(s.Categories) == 0
}

// WantsRepo reports whether the given repo name passes the narrowing filter
func (s Selection) WantsRepo(name string) bool {
	if len(s.Repos) == 0 {
		return true
	}
	for _, want := range s.Repos {
		if want == name {
			return true
		}
	}
	return false
}
