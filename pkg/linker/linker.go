// Package linker materializes link definitions as filesystem symlinks.
// Both operations are idempotent from the run's point of view: creating a
// link that already points at the right source is a skip, and removing a
// link that is not there is a skip, never a failure. Anything else at the
// target path is a conflict and is left untouched.
package linker

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/logging"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Linker creates and removes declared symlinks
type Linker struct {
	logger zerolog.Logger
}

// New creates a Linker
func New() *Linker {
	return &Linker{logger: logging.GetLogger("linker")}
}

// CreateLink makes link.Target a symlink pointing at link.Source. An
// existing correct link is reported as already linked (a skip); an existing
// file or foreign link is a conflict.
func (l *Linker) CreateLink(link types.Link) error {
	fi, err := os.Lstat(link.Target)
	switch {
	case err == nil:
		if fi.Mode()&os.ModeSymlink != 0 {
			if l.pointsAt(link.Target, link.Source) {
				return errors.Newf(errors.ErrAlreadyLinked,
					"%s already links to %s", link.Target, link.Source)
			}
			return errors.Newf(errors.ErrLinkConflict,
				"%s is a link to a different file", link.Target).
				WithDetail("target", link.Target)
		}
		return errors.Newf(errors.ErrLinkConflict,
			"%s already exists", link.Target).
			WithDetail("target", link.Target)
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrLinkCreate,
			"cannot inspect %s", link.Target)
	}

	if err := os.MkdirAll(filepath.Dir(link.Target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate,
			"cannot create parent directory for %s", link.Target)
	}
	if err := os.Symlink(link.Source, link.Target); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate,
			"cannot link %s -> %s", link.Source, link.Target)
	}

	l.logger.Debug().
		Str("source", link.Source).
		Str("target", link.Target).
		Msg("Created symlink")
	return nil
}

// RemoveLink removes the symlink at link.Target, but only if it is a symlink
// that points at the declared source. A missing target is a skip.
func (l *Linker) RemoveLink(link types.Link) error {
	fi, err := os.Lstat(link.Target)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrLinkNotFound,
				"%s does not exist", link.Target)
		}
		return errors.Wrapf(err, errors.ErrLinkRemove,
			"cannot inspect %s", link.Target)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return errors.Newf(errors.ErrLinkConflict,
			"refusing to remove %s: not a symlink", link.Target).
			WithDetail("target", link.Target)
	}
	if !l.pointsAt(link.Target, link.Source) {
		return errors.Newf(errors.ErrLinkConflict,
			"refusing to remove %s: links to a different file", link.Target).
			WithDetail("target", link.Target)
	}

	if err := os.Remove(link.Target); err != nil {
		return errors.Wrapf(err, errors.ErrLinkRemove,
			"cannot remove %s", link.Target)
	}

	l.logger.Debug().
		Str("target", link.Target).
		Msg("Removed symlink")
	return nil
}

// pointsAt reports whether the symlink at target resolves to source,
// tolerating relative destinations and indirection through other links.
func (l *Linker) pointsAt(target, source string) bool {
	dest, err := os.Readlink(target)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(target), dest)
	}
	if filepath.Clean(dest) == filepath.Clean(source) {
		return true
	}
	// Fall back to full resolution for chains of links
	resolvedDest, errDest := filepath.EvalSymlinks(dest)
	resolvedSource, errSource := filepath.EvalSymlinks(source)
	if errDest != nil || errSource != nil {
		return false
	}
	return resolvedDest == resolvedSource
}
