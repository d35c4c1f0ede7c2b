// Package types holds the shared data model for skillsync: items, their
// lifecycle states, classification dispositions, and the reports produced
// by a sync pass.
package types

import "fmt"

// ItemState describes how an item currently exists on this machine.
type ItemState string

const (
	// StateLinked means the active entry resolves to the store entry of
	// the same name.
	StateLinked ItemState = "linked"

	// StateStoreOnly means the store has the item but the active
	// directory has no entry for it at all.
	StateStoreOnly ItemState = "store-only"

	// StateRealUntracked means the active entry is a real directory with
	// no identically-named store entry.
	StateRealUntracked ItemState = "real-untracked"

	// StateExternallyLinked means the active entry is a link that
	// resolves somewhere other than the store. It is left alone.
	StateExternallyLinked ItemState = "externally-linked"

	// StateDangling means the active entry is a link whose target no
	// longer exists. Surfaced as a warning, never silently recreated.
	StateDangling ItemState = "dangling"
)

// Item is a named unit of content: a directory holding at minimum a
// SKILL.md manifest. Name is unique within a namespace.
type Item struct {
	Name          string
	Namespace     string
	CanonicalPath string
	ActivePath    string
	State         ItemState
}

func (i Item) String() string {
	return fmt.Sprintf("%s/%s (%s)", i.Namespace, i.Name, i.State)
}

// Disposition is the outcome assigned to a real-untracked item during
// classification. It is never persisted; untracked items are reclassified
// on every pass.
type Disposition string

const (
	DispositionGlobal        Disposition = "global"
	DispositionProjectLocal  Disposition = "project-local"
	DispositionExternalVault Disposition = "external-vault"
	DispositionSkip          Disposition = "skip"
)

// WarningKind labels a non-fatal condition found during a scan.
type WarningKind string

const (
	// WarnDanglingLink is an active link whose target is gone.
	WarnDanglingLink WarningKind = "dangling-link"

	// WarnNameCollision is a store-only item whose name is already taken
	// by a local entry that does not point at the store. The local entry
	// wins and the store item is not materialized.
	WarnNameCollision WarningKind = "name-collision"
)

// Warning records a per-item scan condition that needs human attention
// but does not stop the pass.
type Warning struct {
	Kind WarningKind
	Item Item
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Item.Name)
}

// InventoryReport is the three-way diff between the store namespace and
// the active directory, plus the externally-linked entries that are left
// untouched. The four sets are pairwise disjoint.
type InventoryReport struct {
	AlreadyLinked    []Item
	StoreOnly        []Item
	RealUntracked    []Item
	ExternallyLinked []Item
	Warnings         []Warning
}

// Total returns the number of items across all four sets.
func (r *InventoryReport) Total() int {
	return len(r.AlreadyLinked) + len(r.StoreOnly) + len(r.RealUntracked) + len(r.ExternallyLinked)
}

// InSync reports whether a pass over this inventory would mutate nothing.
func (r *InventoryReport) InSync() bool {
	return len(r.StoreOnly) == 0 && len(r.RealUntracked) == 0
}

// ItemFailure records one item that failed during a batch stage.
type ItemFailure struct {
	Item  Item
	Stage string
	Err   error
}

func (f ItemFailure) String() string {
	return fmt.Sprintf("%s (%s): %v", f.Item.Name, f.Stage, f.Err)
}

// SyncResult summarizes a full pass. The pass is terminal after the
// publish stage no matter how many individual items failed; the caller
// decides what exit status the counts deserve.
type SyncResult struct {
	// Aborted is set when the user declined the pull gate; no stage
	// after Refresh ran.
	Aborted   bool
	Pulled    bool
	Linked    []Item
	Converted []Item
	Skipped   []Item
	Failures  []ItemFailure
	Warnings  []Warning
	CommitID  string

	// PublishErr is set when the publish stage itself failed (for
	// example a push conflict); per-item failures live in Failures.
	PublishErr error
}

// Failed reports whether any item failed in the link or convert batches.
func (r *SyncResult) Failed() bool {
	return len(r.Failures) > 0
}
