package link

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/arthur-debert/skillsync/pkg/types"
)

// VerifyMirror checks that every file under src exists under dst with
// the same size. Used to prove a copy landed before its source is
// deleted.
func VerifyMirror(fs types.FS, src, dst string) error {
	entries, err := fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		li, err := fs.Lstat(srcPath)
		if err != nil {
			return err
		}

		switch {
		case li.Mode()&iofs.ModeSymlink != 0:
			if _, err := fs.Readlink(dstPath); err != nil {
				return fmt.Errorf("link %s missing in copy: %w", dstPath, err)
			}
		case li.IsDir():
			if err := VerifyMirror(fs, srcPath, dstPath); err != nil {
				return err
			}
		default:
			di, err := fs.Lstat(dstPath)
			if err != nil {
				return fmt.Errorf("file %s missing in copy: %w", dstPath, err)
			}
			if di.Size() != li.Size() {
				return fmt.Errorf("file %s truncated in copy: %d != %d bytes", dstPath, di.Size(), li.Size())
			}
		}
	}
	return nil
}

// CopyDir recursively copies the directory at src to dst, preserving
// file modes. Nested symlinks are recreated as symlinks with their
// original targets.
func CopyDir(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	if err := fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		li, err := fs.Lstat(srcPath)
		if err != nil {
			return err
		}

		switch {
		case li.Mode()&iofs.ModeSymlink != 0:
			target, err := fs.Readlink(srcPath)
			if err != nil {
				return err
			}
			if err := fs.Symlink(target, dstPath); err != nil {
				return err
			}
		case li.IsDir():
			if err := CopyDir(fs, srcPath, dstPath); err != nil {
				return err
			}
		default:
			data, err := fs.ReadFile(srcPath)
			if err != nil {
				return err
			}
			if err := fs.WriteFile(dstPath, data, li.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}
