// Package pretty provides Lipgloss-based styled terminal output.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers used by the text and diff reports.
type Styles struct {
	// File lines
	FilePath lipgloss.Style
	Arrow    lipgloss.Style
	Cached   lipgloss.Style
	Error    lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates Styles, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			FilePath: plain, Arrow: plain, Cached: plain, Error: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			Success: plain, Failure: plain, Dim: plain, Bold: plain,
		}
	}

	red := lipgloss.Color("9")
	green := lipgloss.Color("10")
	grey := lipgloss.Color("8")

	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true),
		Arrow:    lipgloss.NewStyle().Foreground(grey),
		Cached:   lipgloss.NewStyle().Foreground(grey).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(red).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(green),
		DiffRemove:  lipgloss.NewStyle().Foreground(red),
		DiffContext: lipgloss.NewStyle().Foreground(grey),

		Success: lipgloss.NewStyle().Foreground(green).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(red).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(grey),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
