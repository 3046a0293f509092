package types

import (
	"context"
)

// Executor performs the side effects the dispatcher drives: subprocess-based
// version-control actions and filesystem symlink mutation. The dispatcher
// treats it as opaque; a nil error is success, a skip-classified error
// (errors.IsSkip) is recorded as Skipped, anything else as Failed.
type Executor interface {
	Clone(ctx context.Context, entry RepoEntry) error
	Pull(ctx context.Context, entry RepoEntry) error
	Add(ctx context.Context, entry RepoEntry) error
	Commit(ctx context.Context, entry RepoEntry, message string) error
	Push(ctx context.Context, entry RepoEntry) error

	CreateLink(link Link) error
	RemoveLink(link Link) error
}

// Editor is the interactive commit-message collaborator. It returns the
// edited message, or ok=false when the user cancelled the edit. Cancellation
// is not an error: the dispatcher records the repo as Skipped and moves on.
type Editor interface {
	EditMessage(ctx context.Context, seed string) (message string, ok bool, err error)
}
