package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdhtml/internal/ui/pretty"
	"github.com/yaklabco/mdhtml/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatRunSummary(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}

// writeFile prints "source → output" for written files and an error line
// for failures. Cached and collected files are only listed when verbose.
func (r *TextReporter) writeFile(file runner.FileOutcome) {
	source := r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir))

	switch {
	case file.Error != nil:
		fmt.Fprintf(r.bw, "%s: %s\n", source, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
	case file.Cached:
		if r.opts.Verbose {
			fmt.Fprintf(r.bw, "%s %s\n", source, r.styles.Cached.Render("(unchanged)"))
		}
	case file.Written:
		fmt.Fprintf(r.bw, "%s %s %s\n", source, r.styles.Arrow.Render("→"),
			displayPath(file.Output, r.opts.WorkingDir))
	default:
		if r.opts.Verbose {
			fmt.Fprintf(r.bw, "%s %s\n", source, r.styles.Dim.Render("(rendered)"))
		}
	}
}
