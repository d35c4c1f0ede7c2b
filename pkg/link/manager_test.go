package link_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/filesystem"
	"github.com/arthur-debert/skillsync/pkg/link"
	"github.com/arthur-debert/skillsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLink_CreatesLink(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "code-review", "Review code")
	active := filepath.Join(root, "active", "code-review")

	mgr := link.NewManager(filesystem.NewOS())
	require.NoError(t, mgr.EnsureLink(active, canonical))

	assert.True(t, mgr.IsLinked(active, canonical))
	assert.True(t, testutil.IsSymlink(t, active))

	// Content is reachable through the link
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(active, "SKILL.md")), "code-review")
}

func TestEnsureLink_Idempotent(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "sql", "SQL helper")
	active := filepath.Join(root, "active", "sql")

	mgr := link.NewManager(filesystem.NewOS())
	require.NoError(t, mgr.EnsureLink(active, canonical))

	before, err := os.Lstat(active)
	require.NoError(t, err)

	// Second call succeeds with no observable change
	require.NoError(t, mgr.EnsureLink(active, canonical))

	after, err := os.Lstat(active)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.True(t, mgr.IsLinked(active, canonical))
}

func TestEnsureLink_PathOccupiedByRealDir(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "notes", "Notes")
	active := testutil.CreateSkill(t, filepath.Join(root, "active"), "notes", "local notes")

	mgr := link.NewManager(filesystem.NewOS())
	err := mgr.EnsureLink(active, canonical)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathOccupied))

	// The real directory's content is untouched
	content := testutil.ReadFile(t, filepath.Join(active, "SKILL.md"))
	assert.Contains(t, content, "local notes")
	assert.False(t, testutil.IsSymlink(t, active))
}

func TestEnsureLink_PathOccupiedByForeignLink(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "notes", "Notes")
	elsewhere := testutil.CreateSkill(t, filepath.Join(root, "vault"), "notes", "vault notes")

	active := filepath.Join(root, "active", "notes")
	testutil.CreateSymlink(t, elsewhere, active)

	mgr := link.NewManager(filesystem.NewOS())
	err := mgr.EnsureLink(active, canonical)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathOccupied))

	// The foreign link still points where it did
	target, readErr := os.Readlink(active)
	require.NoError(t, readErr)
	assert.Equal(t, elsewhere, target)
}

func TestEnsureLink_MissingCanonical(t *testing.T) {
	root := testutil.TempDir(t)
	mgr := link.NewManager(filesystem.NewOS())

	err := mgr.EnsureLink(filepath.Join(root, "active", "ghost"), filepath.Join(root, "store", "ghost"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestIsLinked_NoEntry(t *testing.T) {
	root := testutil.TempDir(t)
	mgr := link.NewManager(filesystem.NewOS())

	assert.False(t, mgr.IsLinked(filepath.Join(root, "missing"), filepath.Join(root, "store", "missing")))
}

func TestIsDangling(t *testing.T) {
	root := testutil.TempDir(t)
	active := filepath.Join(root, "active", "gone")
	testutil.CreateSymlink(t, filepath.Join(root, "store", "gone"), active)

	mgr := link.NewManager(filesystem.NewOS())
	assert.True(t, mgr.IsDangling(active))

	// A healthy link is not dangling
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "alive", "here")
	healthy := filepath.Join(root, "active", "alive")
	require.NoError(t, mgr.EnsureLink(healthy, canonical))
	assert.False(t, mgr.IsDangling(healthy))
}

func TestMaterialize(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "deep", "Deep skill")
	testutil.CreateFile(t, canonical, "scripts/helper.py", "print('hi')\n")

	active := filepath.Join(root, "active", "deep")
	mgr := link.NewManager(filesystem.NewOS())
	require.NoError(t, mgr.EnsureLink(active, canonical))

	path, err := mgr.Materialize(active)
	require.NoError(t, err)
	assert.Equal(t, active, path)

	// Now a real directory with the full content copied in
	assert.False(t, testutil.IsSymlink(t, active))
	assert.True(t, testutil.DirExists(t, active))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(active, "SKILL.md")), "deep")
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(active, "scripts", "helper.py")), "print")

	// Canonical content still in place
	assert.True(t, testutil.DirExists(t, canonical))
}

func TestMaterialize_NotALink(t *testing.T) {
	root := testutil.TempDir(t)
	real := testutil.CreateSkill(t, filepath.Join(root, "active"), "real", "real dir")

	mgr := link.NewManager(filesystem.NewOS())
	_, err := mgr.Materialize(real)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotALink))
}

func TestRemove_LeavesTarget(t *testing.T) {
	root := testutil.TempDir(t)
	canonical := testutil.CreateSkill(t, filepath.Join(root, "store"), "keep", "kept")
	active := filepath.Join(root, "active", "keep")

	mgr := link.NewManager(filesystem.NewOS())
	require.NoError(t, mgr.EnsureLink(active, canonical))
	require.NoError(t, mgr.Remove(active))

	_, err := os.Lstat(active)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, testutil.DirExists(t, canonical))
}

func TestCopyDir(t *testing.T) {
	root := testutil.TempDir(t)
	src := testutil.CreateSkill(t, root, "src", "source")
	testutil.CreateFile(t, src, "nested/data.txt", "payload")

	fs := filesystem.NewOS()
	dst := filepath.Join(root, "dst")
	require.NoError(t, link.CopyDir(fs, src, dst))

	assert.Equal(t, "payload", testutil.ReadFile(t, filepath.Join(dst, "nested", "data.txt")))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(dst, "SKILL.md")), "source")
}
