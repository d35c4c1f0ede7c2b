// Package link creates, verifies, and removes the on-disk link between an
// item's active path and its canonical location in the store. Platform
// link mechanics (POSIX symlink, Windows directory junction) sit behind
// the Primitive interface; everything above it is platform-neutral.
package link

import "github.com/arthur-debert/skillsync/pkg/types"

// Primitive is the platform link capability. Both implementations must
// support directory targets and must be removable with a plain
// delete-entry call, never a recursive delete, which on one platform's
// semantics would destroy canonical content through the link.
type Primitive interface {
	// CreateLink makes linkPath resolve to target.
	CreateLink(target, linkPath string) error

	// ResolveLink returns the raw target of the link at path, or false
	// if the entry is not a link. It never follows the target.
	ResolveLink(path string) (string, bool)

	// RemoveLink deletes the link entry itself, leaving the target
	// untouched.
	RemoveLink(path string) error
}

// NewPlatformPrimitive returns the native link primitive for this
// platform: symbolic links on POSIX, directory junctions on Windows.
func NewPlatformPrimitive(fs types.FS) Primitive {
	return newPlatformPrimitive(fs)
}
