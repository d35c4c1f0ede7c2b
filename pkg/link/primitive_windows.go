//go:build windows

package link

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/types"
)

// junctionPrimitive implements Primitive with NTFS directory junctions.
// Junctions work for directory targets without elevation, unlike Windows
// symbolic links outside developer mode.
type junctionPrimitive struct {
	fs types.FS
}

func newPlatformPrimitive(fs types.FS) Primitive {
	return &junctionPrimitive{fs: fs}
}

func (p *junctionPrimitive) CreateLink(target, linkPath string) error {
	// mklink is a cmd.exe builtin, not a standalone binary.
	cmd := exec.Command("cmd", "/c", "mklink", "/J", linkPath, target)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mklink /J %s %s: %s: %w", linkPath, target, strings.TrimSpace(string(out)), err)
	}
	return nil
}

func (p *junctionPrimitive) ResolveLink(path string) (string, bool) {
	// os.Readlink reads the reparse point target for junctions as well
	// as symlinks.
	target, err := os.Readlink(path)
	if err != nil {
		return "", false
	}
	return target, true
}

func (p *junctionPrimitive) RemoveLink(path string) error {
	// os.Remove deletes the junction entry without following it.
	return os.Remove(path)
}
