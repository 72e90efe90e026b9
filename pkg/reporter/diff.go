package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdhtml/internal/ui/pretty"
	"github.com/yaklabco/mdhtml/pkg/diff"
)

// DiffReporter writes compare results as git style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportComparisons implements ComparisonReporter.
func (r *DiffReporter) ReportComparisons(_ context.Context, comparisons []Comparison) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var filesWithDiffs, additions, deletions int

	for _, cmp := range comparisons {
		path := displayPath(cmp.Path, r.opts.WorkingDir)

		if cmp.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", cmp.Error)),
			)
			continue
		}

		if !cmp.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		additions += cmp.Diff.Additions
		deletions += cmp.Diff.Deletions
		r.writeDiff(path, cmp.Diff)
	}

	if r.opts.ShowSummary {
		if filesWithDiffs == 0 {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No differences."))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatDiffSummary(filesWithDiffs, additions, deletions))
		}
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with a git style header.
func (r *DiffReporter) writeDiff(path string, d *diff.Diff) {
	header := fmt.Sprintf("diff --git %s/%s %s/%s", d.LeftLabel, path, d.RightLabel, path)
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render(fmt.Sprintf("--- %s/%s", d.LeftLabel, path)))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render(fmt.Sprintf("+++ %s/%s", d.RightLabel, path)))

	for _, hunk := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.StyleDiffLine(hunk.Header()))
		for _, line := range hunk.Lines {
			fmt.Fprintln(r.bw, r.styles.StyleDiffLine(line.Op.Prefix()+line.Text))
		}
	}

	fmt.Fprintln(r.bw)
}
