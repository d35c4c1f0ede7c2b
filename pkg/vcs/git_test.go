package vcs

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner maps the joined argument string to a canned response.
type fakeRunner struct {
	responses map[string]string
	failures  map[string]string
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if msg, ok := f.failures[key]; ok {
		return "", fmt.Errorf("git %s: %s: %w", key, msg, stderrors.New("exit status 1"))
	}
	return f.responses[key], nil
}

func storeWithRemote(t *testing.T) string {
	t.Helper()
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, ".git/config",
		"[core]\n\trepositoryformatversion = 0\n[remote \"origin\"]\n\turl = git@example.com:me/skills.git\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n")
	return dir
}

func newTestGit(t *testing.T, run *fakeRunner) *Git {
	t.Helper()
	if run.responses == nil {
		run.responses = map[string]string{}
	}
	run.responses["symbolic-ref --short HEAD"] = "main"
	g, err := newGit(context.Background(), storeWithRemote(t), "", "", run)
	require.NoError(t, err)
	return g
}

func TestNewGit_DiscoversRemoteAndBranch(t *testing.T) {
	g := newTestGit(t, &fakeRunner{})

	remote, branch := g.Remote()
	assert.Equal(t, "origin", remote)
	assert.Equal(t, "main", branch)
}

func TestNewGit_NoRemoteConfigured(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, ".git/config", "[core]\n\trepositoryformatversion = 0\n")

	_, err := newGit(context.Background(), dir, "", "", &fakeRunner{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSUnavailable))
}

func TestNewGit_NotARepository(t *testing.T) {
	dir := testutil.TempDir(t)

	_, err := newGit(context.Background(), dir, "", "", &fakeRunner{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSUnavailable))
}

func TestFetch(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"rev-parse FETCH_HEAD": "abc123",
	}}
	g := newTestGit(t, run)

	rev, err := g.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Revision("abc123"), rev)
	assert.Contains(t, run.calls, "fetch origin main")
}

func TestDiffNames(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"diff --name-only aaa bbb": strings.Join([]string{
			"query-optimizer/SKILL.md",
			"query-optimizer/scripts/analyze.py",
			"taxonomy-design/SKILL.md",
			"README.md",
			"",
		}, "\n"),
	}}
	g := newTestGit(t, run)

	names, err := g.DiffNames(context.Background(), "aaa", "bbb")
	require.NoError(t, err)
	assert.Equal(t, []string{"query-optimizer", "taxonomy-design"}, names)
}

func TestCommit(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"rev-parse HEAD": "deadbeef",
	}}
	g := newTestGit(t, run)

	id, err := g.Commit(context.Background(), []string{"new-skill"}, "Add skill: new-skill")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", id)
	assert.Contains(t, run.calls, "add -- new-skill")
	assert.Contains(t, run.calls, "commit -m Add skill: new-skill")
}

func TestPush_RejectionIsPublishConflict(t *testing.T) {
	run := &fakeRunner{failures: map[string]string{
		"push origin main": "! [rejected] main -> main (fetch first)",
	}}
	g := newTestGit(t, run)

	err := g.Push(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPublishConflict))
}

func TestPush_NetworkFailureIsUnavailable(t *testing.T) {
	run := &fakeRunner{failures: map[string]string{
		"push origin main": "fatal: Could not resolve host: example.com",
	}}
	g := newTestGit(t, run)

	err := g.Push(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSUnavailable))
}

func TestIntegrate_FastForwardOnly(t *testing.T) {
	run := &fakeRunner{}
	g := newTestGit(t, run)

	require.NoError(t, g.Integrate(context.Background(), "abc123"))
	assert.Contains(t, run.calls, "merge --ff-only abc123")
}
