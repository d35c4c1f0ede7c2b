package link

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/rs/zerolog"
)

// Manager handles the link lifecycle for a single item at a time. It is
// stateless; every call re-reads the filesystem.
type Manager struct {
	fs     types.FS
	prim   Primitive
	logger zerolog.Logger
}

// NewManager creates a Manager using the platform's native link primitive.
func NewManager(fs types.FS) *Manager {
	return &Manager{
		fs:     fs,
		prim:   newPlatformPrimitive(fs),
		logger: logging.GetLogger("link"),
	}
}

// NewManagerWithPrimitive creates a Manager with an explicit primitive,
// for tests that need to simulate platform failures.
func NewManagerWithPrimitive(fs types.FS, prim Primitive) *Manager {
	return &Manager{
		fs:     fs,
		prim:   prim,
		logger: logging.GetLogger("link"),
	}
}

// EnsureLink makes activePath a link to canonicalPath. It is idempotent:
// if the link already exists and points at canonicalPath it succeeds with
// no side effect. It never overwrites: any other entry at activePath,
// link or real, fails with PATH_OCCUPIED.
func (m *Manager) EnsureLink(activePath, canonicalPath string) error {
	if _, err := m.fs.Stat(canonicalPath); err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "canonical path %s does not exist", canonicalPath)
	}

	_, err := m.fs.Lstat(activePath)
	switch {
	case err == nil:
		if target, ok := m.prim.ResolveLink(activePath); ok {
			if sameTarget(activePath, target, canonicalPath) {
				m.logger.Debug().Str("active", activePath).Msg("link already in place")
				return nil
			}
			return errors.Newf(errors.ErrPathOccupied, "%s is a link to %s, not %s", activePath, target, canonicalPath).
				WithDetail("target", target)
		}
		return errors.Newf(errors.ErrPathOccupied, "%s already exists and is not a link", activePath)
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", activePath)
	}

	if err := m.fs.MkdirAll(filepath.Dir(activePath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", activePath)
	}

	if err := m.prim.CreateLink(canonicalPath, activePath); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrLinkDenied,
				"cannot create link at %s; grant link-creation privilege or copy the directory instead", activePath)
		}
		return errors.Wrapf(err, errors.ErrLinkDenied, "cannot create link at %s", activePath)
	}

	m.logger.Info().Str("active", activePath).Str("canonical", canonicalPath).Msg("link created")
	return nil
}

// IsLinked reports whether the entry at activePath is a link resolving to
// exactly canonicalPath. It has no side effects.
func (m *Manager) IsLinked(activePath, canonicalPath string) bool {
	target, ok := m.prim.ResolveLink(activePath)
	if !ok {
		return false
	}
	return sameTarget(activePath, target, canonicalPath)
}

// Target returns the raw link target at activePath, if the entry is a
// link at all.
func (m *Manager) Target(activePath string) (string, bool) {
	return m.prim.ResolveLink(activePath)
}

// IsDangling reports whether activePath is a link whose target no longer
// exists.
func (m *Manager) IsDangling(activePath string) bool {
	target, ok := m.prim.ResolveLink(activePath)
	if !ok {
		return false
	}
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(activePath), resolved)
	}
	_, err := m.fs.Stat(resolved)
	return err != nil
}

// Materialize converts the link at activePath back into a plain directory
// holding a copy of the canonical content, then removes the link. The
// copy lands in a staging directory first so the link is only dropped
// once the content is fully present.
func (m *Manager) Materialize(activePath string) (string, error) {
	target, ok := m.prim.ResolveLink(activePath)
	if !ok {
		return "", errors.Newf(errors.ErrNotALink, "%s is not a link", activePath)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(activePath), target)
	}

	staging := activePath + ".materializing"
	if err := CopyDir(m.fs, target, staging); err != nil {
		_ = m.fs.RemoveAll(staging)
		return "", errors.Wrapf(err, errors.ErrFileCopy, "cannot copy %s", target)
	}

	if err := m.prim.RemoveLink(activePath); err != nil {
		_ = m.fs.RemoveAll(staging)
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot remove link %s", activePath)
	}

	if err := m.fs.Rename(staging, activePath); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot move %s into place", staging)
	}

	m.logger.Info().Str("active", activePath).Str("canonical", target).Msg("link materialized into real directory")
	return activePath, nil
}

// Remove deletes the link entry at activePath without touching its
// target. Fails if the entry is not a link.
func (m *Manager) Remove(activePath string) error {
	if _, ok := m.prim.ResolveLink(activePath); !ok {
		return errors.Newf(errors.ErrNotALink, "%s is not a link", activePath)
	}
	return m.prim.RemoveLink(activePath)
}

// sameTarget compares a raw link target (possibly relative to the link's
// own directory) with the wanted canonical path.
func sameTarget(linkPath, target, canonical string) bool {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	return filepath.Clean(target) == filepath.Clean(canonical)
}
