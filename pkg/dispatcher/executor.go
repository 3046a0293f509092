package dispatcher

import (
	"context"

	"github.com/arthur-debert/gitfarm/pkg/git"
	"github.com/arthur-debert/gitfarm/pkg/linker"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// SystemExecutor pairs the git client with the linker to satisfy
// types.Executor for real runs.
type SystemExecutor struct {
	Git   *git.Git
	Links *linker.Linker
}

// NewSystemExecutor creates the production executor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{
		Git:   git.New(),
		Links: linker.New(),
	}
}

func (e *SystemExecutor) Clone(ctx context.Context, entry types.RepoEntry) error {
	return e.Git.Clone(ctx, entry)
}

func (e *SystemExecutor) Pull(ctx context.Context, entry types.RepoEntry) error {
	return e.Git.Pull(ctx, entry)
}

func (e *SystemExecutor) Add(ctx context.Context, entry types.RepoEntry) error {
	return e.Git.Add(ctx, entry)
}

func (e *SystemExecutor) Commit(ctx context.Context, entry types.RepoEntry, message string) error {
	return e.Git.Commit(ctx, entry, message)
}

func (e *SystemExecutor) Push(ctx context.Context, entry types.RepoEntry) error {
	return e.Git.Push(ctx, entry)
}

func (e *SystemExecutor) CreateLink(link types.Link) error {
	return e.Links.CreateLink(link)
}

func (e *SystemExecutor) RemoveLink(link types.Link) error {
	return e.Links.RemoveLink(link)
}
