// Package ui renders sync results and inventory reports for the
// terminal. Styles use adaptive colors so they work on both light and
// dark themes; on dumb terminals everything degrades to plain text.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Renderer writes human-readable reports to out.
type Renderer struct {
	out   io.Writer
	plain bool
}

// NewRenderer creates a Renderer. Color is dropped automatically when
// the terminal cannot take it.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:   out,
		plain: termenv.ColorProfile() == termenv.Ascii,
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// Summary renders the outcome of a full sync pass.
func (r *Renderer) Summary(result *types.SyncResult) {
	if result.Aborted {
		fmt.Fprintln(r.out, r.style(mutedStyle, "Sync aborted: pull declined, nothing changed."))
		return
	}

	fmt.Fprintln(r.out, r.style(headerStyle, "Sync summary"))
	if result.Pulled {
		fmt.Fprintln(r.out, "  pulled new store content")
	}

	r.itemLine("linked", result.Linked, successStyle)
	r.itemLine("converted", result.Converted, successStyle)
	r.itemLine("skipped", result.Skipped, mutedStyle)

	for _, w := range result.Warnings {
		fmt.Fprintf(r.out, "  %s %s\n", r.style(warnStyle, "warning:"), w)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(r.out, "  %s %s\n", r.style(errorStyle, "failed:"), f)
	}

	switch {
	case result.PublishErr != nil:
		fmt.Fprintf(r.out, "  %s %v\n", r.style(errorStyle, "publish:"), result.PublishErr)
	case result.CommitID != "":
		fmt.Fprintf(r.out, "  published commit %s\n", shortID(result.CommitID))
	}

	if !result.Failed() && result.PublishErr == nil && len(result.Linked)+len(result.Converted) == 0 {
		fmt.Fprintln(r.out, r.style(mutedStyle, "  everything already in sync"))
	}
}

// Inventory renders a scan report without running a pass.
func (r *Renderer) Inventory(report *types.InventoryReport) {
	fmt.Fprintln(r.out, r.style(headerStyle, "Skill inventory"))

	r.itemLine("linked", report.AlreadyLinked, successStyle)
	r.itemLine("store only", report.StoreOnly, warnStyle)
	r.itemLine("untracked", report.RealUntracked, warnStyle)
	r.itemLine("external", report.ExternallyLinked, mutedStyle)

	for _, w := range report.Warnings {
		fmt.Fprintf(r.out, "  %s %s\n", r.style(warnStyle, "warning:"), w)
	}

	if report.InSync() && len(report.Warnings) == 0 {
		fmt.Fprintln(r.out, r.style(mutedStyle, "  in sync"))
	}
}

func (r *Renderer) itemLine(label string, items []types.Item, s lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	fmt.Fprintf(r.out, "  %s %s\n", r.style(s, fmt.Sprintf("%s (%d):", label, len(items))), strings.Join(names, ", "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
