// Package classify assigns a disposition to each real-untracked item.
// The decision is a pure function from item metadata to disposition; the
// interactive prompt is just one backing for it, so the orchestrator can
// be tested without a terminal.
package classify

import (
	"github.com/arthur-debert/skillsync/pkg/types"
)

// Decider produces a disposition for one untracked item. Dispositions
// are never persisted; still-untracked items are re-decided on every
// pass.
type Decider interface {
	Decide(item types.Item) (types.Disposition, error)
}

// DeciderFunc adapts a plain function to the Decider interface.
type DeciderFunc func(item types.Item) (types.Disposition, error)

func (f DeciderFunc) Decide(item types.Item) (types.Disposition, error) {
	return f(item)
}

// AutoGlobal returns a decider that accepts everything into the store,
// used for --yes and unattended runs.
func AutoGlobal() Decider {
	return DeciderFunc(func(types.Item) (types.Disposition, error) {
		return types.DispositionGlobal, nil
	})
}

// SkipAll returns a decider that leaves every item untouched.
func SkipAll() Decider {
	return DeciderFunc(func(types.Item) (types.Disposition, error) {
		return types.DispositionSkip, nil
	})
}
