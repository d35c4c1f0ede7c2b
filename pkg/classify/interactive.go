package classify

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/manifest"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

const previewLines = 12

var dispositionChoices = []struct {
	label       string
	disposition types.Disposition
}{
	{"global: publish to the shared store and link it here", types.DispositionGlobal},
	{"project-local: keep as a plain directory on this machine", types.DispositionProjectLocal},
	{"external-vault: belongs to a vault, leave it for vault tooling", types.DispositionExternalVault},
	{"skip: decide next time", types.DispositionSkip},
}

// Interactive prompts a human for each item's disposition, previewing
// the item's manifest so the decision has context.
type Interactive struct {
	fs types.FS
}

// NewInteractive creates the prompt-backed decider.
func NewInteractive(fs types.FS) *Interactive {
	return &Interactive{fs: fs}
}

func (d *Interactive) Decide(item types.Item) (types.Disposition, error) {
	logger := logging.GetLogger("classify.interactive")

	m, err := manifest.Load(d.fs, item.ActivePath)
	if err != nil {
		return types.DispositionSkip, err
	}

	pterm.DefaultSection.Printf("Untracked skill: %s", m.Name)
	if m.Description != "" {
		pterm.Println(pterm.FgGray.Sprint(m.Description))
	}
	if preview := renderPreview(m.Body); preview != "" {
		pterm.Println(preview)
	}

	options := make([]string, len(dispositionChoices))
	for i, c := range dispositionChoices {
		options[i] = c.label
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(fmt.Sprintf("What should happen to %q?", m.Name)).
		Show()
	if err != nil {
		return types.DispositionSkip, err
	}

	for _, c := range dispositionChoices {
		if c.label == selected {
			logger.Info().Str("item", item.Name).Str("disposition", string(c.disposition)).Msg("classified")
			return c.disposition, nil
		}
	}
	return types.DispositionSkip, nil
}

// renderPreview shows the first lines of the manifest body, through
// glamour when the terminal can take color, plain otherwise.
func renderPreview(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	lines := strings.Split(body, "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], "...")
	}
	snippet := strings.Join(lines, "\n")

	if termenv.ColorProfile() == termenv.Ascii {
		return snippet
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(78))
	if err != nil {
		return snippet
	}
	rendered, err := renderer.Render(snippet)
	if err != nil {
		return snippet
	}
	return strings.TrimRight(rendered, "\n")
}
