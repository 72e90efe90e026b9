// Package reporter formats render and compare results.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdhtml/pkg/diff"
	"github.com/yaklabco/mdhtml/pkg/runner"
)

// Reporter formats and writes render results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// ComparisonReporter formats and writes compare results.
type ComparisonReporter interface {
	// ReportComparisons returns the number of files whose renderings differ.
	ReportComparisons(ctx context.Context, comparisons []Comparison) (int, error)
}

// Comparison is the outcome of rendering one file with both engines.
type Comparison struct {
	// Path is the source file.
	Path string

	// Diff is nil when both renderings agree.
	Diff *diff.Diff

	// Error is set if either rendering failed.
	Error error
}

// Compile-time interface checks.
var (
	_ Reporter           = (*TextReporter)(nil)
	_ Reporter           = (*JSONReporter)(nil)
	_ ComparisonReporter = (*DiffReporter)(nil)
	_ ComparisonReporter = (*JSONReporter)(nil)
)

// New creates a Reporter for render results. The diff format only applies
// to comparisons, so it is rejected here.
//
//nolint:ireturn // factory selects the implementation by format
func New(opts Options) (Reporter, error) {
	opts = withDefaults(opts)

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return nil, fmt.Errorf("format %q is only supported by compare", opts.Format)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// NewComparison creates a ComparisonReporter. Text and diff both produce
// unified diffs.
//
//nolint:ireturn // factory selects the implementation by format
func NewComparison(opts Options) (ComparisonReporter, error) {
	opts = withDefaults(opts)

	switch opts.Format {
	case FormatText, FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func withDefaults(opts Options) Options {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return opts
}

// displayPath makes path relative to workDir when it lies beneath it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
