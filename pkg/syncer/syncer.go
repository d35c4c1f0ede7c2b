// Package syncer runs the five-stage bidirectional sync pass: refresh
// the store, link new store-only items, classify untracked local items,
// convert accepted ones into store entries, publish. Each stage's
// effects are durable before the next begins, so an interruption never
// corrupts anything and re-running is always safe.
package syncer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/classify"
	"github.com/arthur-debert/skillsync/pkg/config"
	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/inventory"
	"github.com/arthur-debert/skillsync/pkg/link"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/arthur-debert/skillsync/pkg/vcs"
	"github.com/rs/zerolog"
)

// Options wires the orchestrator's collaborators. Config, FS, VCS and
// Decider are required; the rest default to the real implementations.
type Options struct {
	Config    *config.Config
	FS        types.FS
	Links     *link.Manager
	Scanner   *inventory.Scanner
	VCS       vcs.Collaborator
	Decider   classify.Decider
	Confirmer Confirmer
}

// Orchestrator executes one sync pass at a time. It holds no state
// between runs; everything is reconstructed by scanning.
type Orchestrator struct {
	cfg       *config.Config
	fs        types.FS
	links     *link.Manager
	scanner   *inventory.Scanner
	vcs       vcs.Collaborator
	decider   classify.Decider
	confirmer Confirmer
	logger    zerolog.Logger
}

// New creates an Orchestrator from the given options.
func New(opts Options) *Orchestrator {
	links := opts.Links
	if links == nil {
		links = link.NewManager(opts.FS)
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = inventory.NewScanner(opts.FS, links, opts.Config.Namespace)
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = AutoConfirm()
	}
	return &Orchestrator{
		cfg:       opts.Config,
		fs:        opts.FS,
		links:     links,
		scanner:   scanner,
		vcs:       opts.VCS,
		decider:   opts.Decider,
		confirmer: confirmer,
		logger:    logging.GetLogger("syncer"),
	}
}

// Run executes the five stages in order. Per-item failures in the batch
// stages are collected in the result, not returned; a returned error
// means the Refresh stage failed and nothing ran.
func (o *Orchestrator) Run(ctx context.Context) (*types.SyncResult, error) {
	result := &types.SyncResult{}

	// Stage 1: refresh
	aborted, err := o.refresh(ctx, result)
	if err != nil {
		return nil, err
	}
	if aborted {
		result.Aborted = true
		return result, nil
	}

	report, err := o.scanner.Scan(o.cfg.ActiveDir, o.cfg.NamespaceDir())
	if err != nil {
		return nil, err
	}
	result.Warnings = report.Warnings

	// Stage 2: materialize store-only items, best effort over the batch
	o.materialize(report.StoreOnly, result)

	// Stage 3: classify, no mutation
	decisions := o.classifyAll(report.RealUntracked, result)

	// Stage 4: convert accepted items into store entries
	o.convertAll(decisions, result)

	// Stage 5: publish
	o.publish(ctx, result)

	o.logger.Info().
		Int("linked", len(result.Linked)).
		Int("converted", len(result.Converted)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failures)).
		Msg("sync pass complete")
	return result, nil
}

// refresh fetches the remote revision and fast-forwards when it moved.
// Returns true when the user declined the pull and the pass must stop.
func (o *Orchestrator) refresh(ctx context.Context, result *types.SyncResult) (bool, error) {
	local, err := o.vcs.CurrentRevision(ctx)
	if err != nil {
		return false, err
	}

	remote, err := o.vcs.Fetch(ctx, o.cfg.Branch)
	if err != nil {
		return false, err
	}

	if remote == local {
		o.logger.Debug().Str("revision", string(local)).Msg("store already current")
		return false, nil
	}

	ok, err := o.confirmer.Confirm("The store has new content. Pull it now?")
	if err != nil {
		return false, err
	}
	if !ok {
		o.logger.Info().Msg("pull declined, aborting pass")
		return true, nil
	}

	if err := o.vcs.Integrate(ctx, remote); err != nil {
		return false, err
	}
	result.Pulled = true

	// The name diff is informational; the scan is what decides which
	// entries get linked, so an interrupted earlier pass still heals.
	if names, err := o.vcs.DiffNames(ctx, local, remote); err == nil && len(names) > 0 {
		o.logger.Info().Strs("items", names).Msg("store gained content")
	}
	return false, nil
}

func (o *Orchestrator) materialize(storeOnly []types.Item, result *types.SyncResult) {
	for _, item := range storeOnly {
		if err := o.links.EnsureLink(item.ActivePath, item.CanonicalPath); err != nil {
			o.logger.Warn().Str("item", item.Name).Err(err).Msg("cannot link store item")
			result.Failures = append(result.Failures, types.ItemFailure{Item: item, Stage: "link", Err: err})
			continue
		}
		item.State = types.StateLinked
		result.Linked = append(result.Linked, item)
	}
}

type decision struct {
	item        types.Item
	disposition types.Disposition
}

func (o *Orchestrator) classifyAll(untracked []types.Item, result *types.SyncResult) []decision {
	var decisions []decision
	for _, item := range untracked {
		d, err := o.decider.Decide(item)
		if err != nil {
			result.Failures = append(result.Failures, types.ItemFailure{Item: item, Stage: "classify", Err: err})
			continue
		}
		decisions = append(decisions, decision{item: item, disposition: d})
	}
	return decisions
}

func (o *Orchestrator) convertAll(decisions []decision, result *types.SyncResult) {
	for _, d := range decisions {
		if d.disposition != types.DispositionGlobal {
			// Project-local and external-vault items get no store
			// mutation in this pass; moving an item into a vault is a
			// separate, explicitly confirmed operation.
			o.logger.Debug().Str("item", d.item.Name).Str("disposition", string(d.disposition)).Msg("not converting")
			result.Skipped = append(result.Skipped, d.item)
			continue
		}
		if err := o.convert(d.item); err != nil {
			result.Failures = append(result.Failures, types.ItemFailure{Item: d.item, Stage: "convert", Err: err})
			continue
		}
		result.Converted = append(result.Converted, d.item)
	}
}

// convert copies the real directory into the store, verifies the copy,
// deletes the source, and links it. The verify-before-delete ordering is
// what guarantees the only copy of the content can never be lost to a
// crash.
func (o *Orchestrator) convert(item types.Item) error {
	if err := link.CopyDir(o.fs, item.ActivePath, item.CanonicalPath); err != nil {
		_ = o.fs.RemoveAll(item.CanonicalPath)
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot copy %s into store", item.Name)
	}
	if err := link.VerifyMirror(o.fs, item.ActivePath, item.CanonicalPath); err != nil {
		_ = o.fs.RemoveAll(item.CanonicalPath)
		return errors.Wrapf(err, errors.ErrFileCopy, "copy of %s failed verification", item.Name)
	}

	if err := o.fs.RemoveAll(item.ActivePath); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove converted directory %s", item.ActivePath)
	}

	if err := o.links.EnsureLink(item.ActivePath, item.CanonicalPath); err != nil {
		return err
	}

	o.logger.Info().Str("item", item.Name).Msg("converted into store entry")
	return nil
}

// publish stages the converted entries, commits them as one batch, and
// pushes. A push rejection leaves the local commit intact for manual
// resolution; it is never force-pushed away.
func (o *Orchestrator) publish(ctx context.Context, result *types.SyncResult) {
	if len(result.Converted) == 0 {
		return
	}

	paths := make([]string, len(result.Converted))
	for i, item := range result.Converted {
		rel, err := filepath.Rel(o.cfg.StoreDir, item.CanonicalPath)
		if err != nil {
			rel = item.Name
		}
		paths[i] = rel
	}

	commitID, err := o.vcs.Commit(ctx, paths, commitMessage(result.Converted))
	if err != nil {
		result.PublishErr = err
		return
	}
	result.CommitID = commitID

	if err := o.vcs.Push(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("push failed; local commit kept")
		result.PublishErr = err
	}
}

func commitMessage(items []types.Item) string {
	if len(items) == 1 {
		return fmt.Sprintf("Add skill: %s", items[0].Name)
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return fmt.Sprintf("Add %d skills: %s", len(items), strings.Join(names, ", "))
}
