package manifest_test

import (
	"testing"

	"github.com/arthur-debert/skillsync/pkg/filesystem"
	"github.com/arthur-debert/skillsync/pkg/manifest"
	"github.com/arthur-debert/skillsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	root := testutil.TempDir(t)
	dir := testutil.CreateDir(t, root, "query-optimizer")
	testutil.CreateFile(t, dir, "SKILL.md",
		"---\nname: query-optimizer\ndescription: Analyze and rewrite slow SQL queries.\n---\n\n# Query Optimizer\n\nInstructions here.\n")

	m, err := manifest.Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "query-optimizer", m.Name)
	assert.Equal(t, "Analyze and rewrite slow SQL queries.", m.Description)
	assert.Contains(t, m.Body, "# Query Optimizer")
}

func TestLoad_NameFallsBackToDirName(t *testing.T) {
	root := testutil.TempDir(t)
	dir := testutil.CreateDir(t, root, "unnamed-skill")
	testutil.CreateFile(t, dir, "SKILL.md", "---\ndescription: no name field\n---\nbody\n")

	m, err := manifest.Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "unnamed-skill", m.Name)
	assert.Equal(t, "no name field", m.Description)
}

func TestLoad_MissingManifest(t *testing.T) {
	root := testutil.TempDir(t)
	dir := testutil.CreateDir(t, root, "bare")

	m, err := manifest.Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "bare", m.Name)
	assert.Empty(t, m.Description)
}

func TestLoad_NoFrontmatter(t *testing.T) {
	root := testutil.TempDir(t)
	dir := testutil.CreateDir(t, root, "plain")
	testutil.CreateFile(t, dir, "SKILL.md", "# Just markdown\n")

	m, err := manifest.Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "plain", m.Name)
	assert.Contains(t, m.Body, "Just markdown")
}

func TestLoad_MalformedFrontmatter(t *testing.T) {
	root := testutil.TempDir(t)
	dir := testutil.CreateDir(t, root, "broken")
	testutil.CreateFile(t, dir, "SKILL.md", "---\nname: [unclosed\n---\nbody\n")

	m, err := manifest.Load(filesystem.NewOS(), dir)
	require.NoError(t, err)
	assert.Equal(t, "broken", m.Name)
}

func TestExists(t *testing.T) {
	root := testutil.TempDir(t)
	with := testutil.CreateSkill(t, root, "with", "has manifest")
	without := testutil.CreateDir(t, root, "without")

	fs := filesystem.NewOS()
	assert.True(t, manifest.Exists(fs, with))
	assert.False(t, manifest.Exists(fs, without))
}
