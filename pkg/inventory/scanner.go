// Package inventory produces the three-way diff between the store's
// canonical namespace and the active directory's current contents.
package inventory

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/link"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/rs/zerolog"
)

// Scanner classifies every entry of the active directory and the store
// namespace into exactly one of the report's sets. It never mutates
// either tree.
type Scanner struct {
	fs        types.FS
	links     *link.Manager
	namespace string
	logger    zerolog.Logger
}

// NewScanner creates a Scanner for the given namespace.
func NewScanner(fs types.FS, links *link.Manager, namespace string) *Scanner {
	return &Scanner{
		fs:        fs,
		links:     links,
		namespace: namespace,
		logger:    logging.GetLogger("inventory"),
	}
}

// Scan walks both directories and builds the InventoryReport. A missing
// active directory is treated as empty; a missing store directory is an
// error because the store must have been cloned before syncing.
func (s *Scanner) Scan(activeDir, storeDir string) (*types.InventoryReport, error) {
	storeNames, err := s.listDirs(storeDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read store directory %s", storeDir)
	}

	activeEntries, err := s.fs.ReadDir(activeDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read active directory %s", activeDir)
		}
		activeEntries = nil
	}

	report := &types.InventoryReport{}
	seen := map[string]bool{}

	for _, entry := range activeEntries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		item := types.Item{
			Name:          name,
			Namespace:     s.namespace,
			ActivePath:    filepath.Join(activeDir, name),
			CanonicalPath: filepath.Join(storeDir, name),
		}
		inStore := storeNames[name]

		target, isLink := s.links.Target(item.ActivePath)
		switch {
		case isLink && s.links.IsDangling(item.ActivePath):
			// Never silently recreated; a human decides what the stale
			// link was for.
			item.State = types.StateDangling
			report.Warnings = append(report.Warnings, types.Warning{Kind: types.WarnDanglingLink, Item: item})
			seen[name] = true

		case isLink && inStore && s.links.IsLinked(item.ActivePath, item.CanonicalPath):
			item.State = types.StateLinked
			report.AlreadyLinked = append(report.AlreadyLinked, item)
			seen[name] = true

		case isLink:
			// Points somewhere else, e.g. into a vault. Left untouched
			// by all downstream stages.
			item.State = types.StateExternallyLinked
			report.ExternallyLinked = append(report.ExternallyLinked, item)
			seen[name] = true
			if inStore {
				report.Warnings = append(report.Warnings, types.Warning{Kind: types.WarnNameCollision, Item: item})
			}
			s.logger.Debug().Str("item", name).Str("target", target).Msg("externally linked entry")

		case entry.IsDir() && !inStore:
			item.State = types.StateRealUntracked
			report.RealUntracked = append(report.RealUntracked, item)
			seen[name] = true

		case entry.IsDir():
			// A real directory shadowing a store entry of the same name.
			// The local directory wins; the store entry is reported, not
			// materialized.
			item.State = types.StateRealUntracked
			report.Warnings = append(report.Warnings, types.Warning{Kind: types.WarnNameCollision, Item: item})
			seen[name] = true

		default:
			// Plain files in the active directory are not items, but a
			// file shadowing a store name still blocks materialization.
			if inStore {
				report.Warnings = append(report.Warnings, types.Warning{Kind: types.WarnNameCollision, Item: item})
				seen[name] = true
			}
		}
	}

	for name := range storeNames {
		if seen[name] {
			continue
		}
		report.StoreOnly = append(report.StoreOnly, types.Item{
			Name:          name,
			Namespace:     s.namespace,
			ActivePath:    filepath.Join(activeDir, name),
			CanonicalPath: filepath.Join(storeDir, name),
			State:         types.StateStoreOnly,
		})
	}

	sortItems(report.AlreadyLinked)
	sortItems(report.StoreOnly)
	sortItems(report.RealUntracked)
	sortItems(report.ExternallyLinked)

	s.logger.Debug().
		Int("linked", len(report.AlreadyLinked)).
		Int("storeOnly", len(report.StoreOnly)).
		Int("realUntracked", len(report.RealUntracked)).
		Int("externallyLinked", len(report.ExternallyLinked)).
		Int("warnings", len(report.Warnings)).
		Msg("scan complete")

	return report, nil
}

// listDirs returns the skill directory names directly under dir.
func (s *Scanner) listDirs(dir string) (map[string]bool, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names[entry.Name()] = true
	}
	return names, nil
}

func sortItems(items []types.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
