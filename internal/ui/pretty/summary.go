package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdhtml/pkg/runner"
)

// Plural returns word with an "s" unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatRunSummary formats render statistics as a single line.
// Example: "3 files rendered, 2 unchanged, 1 failed (12.4 KiB written)".
func (s *Styles) FormatRunSummary(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found.") + "\n"
	}

	parts := []string{s.Success.Render(Plural(stats.FilesRendered, "file") + " rendered")}

	if stats.FilesCached > 0 {
		parts = append(parts, s.Cached.Render(fmt.Sprintf("%d unchanged", stats.FilesCached)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	line := strings.Join(parts, ", ")
	if stats.FilesWritten > 0 {
		line += s.Dim.Render(fmt.Sprintf(" (%s written)", FormatBytes(stats.BytesOut)))
	}

	return line + "\n"
}

// FormatDiffSummary formats compare totals in git's "--stat" wording.
func (s *Styles) FormatDiffSummary(files, additions, deletions int) string {
	parts := []string{Plural(files, "file") + " differ"}
	if files == 1 {
		parts[0] = "1 file differs"
	}

	if additions > 0 {
		parts = append(parts, s.DiffAdd.Render(Plural(additions, "insertion")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(Plural(deletions, "deletion")+"(-)"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// StyleDiffLine colors one line of unified diff output.
func (s *Styles) StyleDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}
