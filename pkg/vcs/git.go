package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/gopasspw/gitconfig"
	"github.com/rs/zerolog"
)

// Runner executes a git command in dir and returns its combined output.
// Injectable so tests run without a git binary.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return text, fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), text, err)
	}
	return text, nil
}

// Git implements Collaborator by shelling out to the git binary with the
// store directory as working tree.
type Git struct {
	dir    string
	remote string
	branch string
	run    Runner
	logger zerolog.Logger
}

// NewGit creates a Git collaborator for the store at dir. Empty remote or
// branch are resolved from the repository itself: the remote from
// .git/config, the branch from HEAD.
func NewGit(ctx context.Context, dir, remote, branch string) (*Git, error) {
	return newGit(ctx, dir, remote, branch, execRunner{})
}

func newGit(ctx context.Context, dir, remote, branch string, run Runner) (*Git, error) {
	g := &Git{
		dir:    dir,
		remote: remote,
		branch: branch,
		run:    run,
		logger: logging.GetLogger("vcs.git"),
	}

	if g.remote == "" {
		g.remote = "origin"
	}

	cfg, err := gitconfig.LoadConfig(filepath.Join(dir, ".git", "config"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCSUnavailable, "store at %s is not a git repository", dir)
	}
	url, ok := cfg.Get("remote." + g.remote + ".url")
	if !ok {
		return nil, errors.Newf(errors.ErrVCSUnavailable, "store has no remote %q configured", g.remote)
	}

	if g.branch == "" {
		out, err := run.Run(ctx, dir, "symbolic-ref", "--short", "HEAD")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrVCSCommand, "cannot determine current branch")
		}
		g.branch = out
	}

	g.logger.Debug().Str("remote", g.remote).Str("url", url).Str("branch", g.branch).Msg("collaborator ready")
	return g, nil
}

// Remote returns the remote and branch this collaborator publishes to.
func (g *Git) Remote() (remote, branch string) {
	return g.remote, g.branch
}

func (g *Git) CurrentRevision(ctx context.Context) (Revision, error) {
	out, err := g.run.Run(ctx, g.dir, "rev-parse", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommand, "cannot read current revision")
	}
	return Revision(out), nil
}

func (g *Git) Fetch(ctx context.Context, remoteRef string) (Revision, error) {
	if remoteRef == "" {
		remoteRef = g.branch
	}
	if _, err := g.run.Run(ctx, g.dir, "fetch", g.remote, remoteRef); err != nil {
		return "", classify(err, "fetch failed")
	}
	out, err := g.run.Run(ctx, g.dir, "rev-parse", "FETCH_HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommand, "cannot resolve fetched revision")
	}
	return Revision(out), nil
}

func (g *Git) Integrate(ctx context.Context, rev Revision) error {
	if _, err := g.run.Run(ctx, g.dir, "merge", "--ff-only", string(rev)); err != nil {
		return errors.Wrapf(err, errors.ErrVCSCommand, "cannot fast-forward to %s", rev)
	}
	return nil
}

func (g *Git) DiffNames(ctx context.Context, from, to Revision) ([]string, error) {
	out, err := g.run.Run(ctx, g.dir, "diff", "--name-only", string(from), string(to))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCSCommand, "cannot diff revisions")
	}

	seen := map[string]bool{}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		// Only paths inside an item directory name an item; top-level
		// files like README.md are store plumbing.
		idx := strings.Index(line, "/")
		if idx <= 0 {
			continue
		}
		name := line[:idx]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (g *Git) Commit(ctx context.Context, paths []string, message string) (string, error) {
	args := append([]string{"add", "--"}, paths...)
	if _, err := g.run.Run(ctx, g.dir, args...); err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommand, "cannot stage paths")
	}
	if _, err := g.run.Run(ctx, g.dir, "commit", "-m", message); err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommand, "cannot commit")
	}
	out, err := g.run.Run(ctx, g.dir, "rev-parse", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommand, "cannot read committed revision")
	}
	return out, nil
}

func (g *Git) Push(ctx context.Context) error {
	if _, err := g.run.Run(ctx, g.dir, "push", g.remote, g.branch); err != nil {
		return classify(err, "push failed")
	}
	return nil
}

// classify maps git's stderr text onto the error taxonomy. A rejected
// push is an expected, recoverable outcome; network and auth failures are
// the collaborator being unavailable.
func classify(err error, msg string) error {
	text := err.Error()
	switch {
	case strings.Contains(text, "non-fast-forward"),
		strings.Contains(text, "fetch first"),
		strings.Contains(text, "[rejected]"):
		return errors.Wrap(err, errors.ErrPublishConflict, "remote advanced concurrently; pull and re-run")
	case strings.Contains(text, "Could not resolve"),
		strings.Contains(text, "could not read"),
		strings.Contains(text, "Connection"),
		strings.Contains(text, "Authentication"),
		strings.Contains(text, "Permission denied"):
		return errors.Wrap(err, errors.ErrVCSUnavailable, msg)
	default:
		return errors.Wrap(err, errors.ErrVCSCommand, msg)
	}
}
