//go:build !windows

package link

import "github.com/arthur-debert/skillsync/pkg/types"

// symlinkPrimitive implements Primitive with POSIX symbolic links. It
// routes through types.FS so tests can point it at a temp tree.
type symlinkPrimitive struct {
	fs types.FS
}

func newPlatformPrimitive(fs types.FS) Primitive {
	return &symlinkPrimitive{fs: fs}
}

func (p *symlinkPrimitive) CreateLink(target, linkPath string) error {
	return p.fs.Symlink(target, linkPath)
}

func (p *symlinkPrimitive) ResolveLink(path string) (string, bool) {
	target, err := p.fs.Readlink(path)
	if err != nil {
		return "", false
	}
	return target, true
}

func (p *symlinkPrimitive) RemoveLink(path string) error {
	return p.fs.Remove(path)
}
