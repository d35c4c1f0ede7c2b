package types

import "io/fs"

// FS is the filesystem surface skillsync needs. Components take an FS so
// they can run against a tree rooted in a test temp dir.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Link operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Removal. Remove deletes a single entry (including a link, without
	// following it); RemoveAll is only ever pointed at real directories.
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
