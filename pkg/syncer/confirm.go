package syncer

import "github.com/pterm/pterm"

// Confirmer answers the sync pass's yes/no gates: pulling remote content
// and publishing. Interactive runs back it with a terminal prompt;
// --yes and tests use AutoConfirm.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) (bool, error)

func (f ConfirmerFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AutoConfirm accepts every gate.
func AutoConfirm() Confirmer {
	return ConfirmerFunc(func(string) (bool, error) {
		return true, nil
	})
}

// TerminalConfirm prompts on the terminal, defaulting to yes.
func TerminalConfirm() Confirmer {
	return ConfirmerFunc(func(prompt string) (bool, error) {
		return pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show(prompt)
	})
}
