// Package vcs is the boundary to the version-control collaborator. The
// orchestrator only ever needs a handful of primitives: fetch, current
// revision, name diff, commit, push. Everything else (merging document
// content, auth, transport) belongs to the external tool.
package vcs

import "context"

// Revision is an opaque, monotonically advancing identifier for the
// store's committed state. It is compared for equality, never inspected.
type Revision string

// Collaborator is the consumed version-control surface.
type Collaborator interface {
	// CurrentRevision returns the store's local revision.
	CurrentRevision(ctx context.Context) (Revision, error)

	// Fetch downloads the remote ref and returns its revision without
	// integrating it.
	Fetch(ctx context.Context, remoteRef string) (Revision, error)

	// Integrate fast-forwards the local store to rev. It never merges.
	Integrate(ctx context.Context, rev Revision) error

	// DiffNames returns the item names whose content differs between the
	// two revisions.
	DiffNames(ctx context.Context, from, to Revision) ([]string, error)

	// Commit stages the given paths and creates a single commit.
	Commit(ctx context.Context, paths []string, message string) (string, error)

	// Push publishes local commits. A concurrently advanced remote is
	// reported as PUBLISH_CONFLICT; the local commit stays intact.
	Push(ctx context.Context) error
}
